package app

import (
	"errors"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/mercia/pkg/pgpool"
	"github.com/joho/godotenv"
)

type Config struct {
	HostedURL     string        // SUPABASE_URL; hosted mode needs both URL and key
	HostedKey     string        // SUPABASE_KEY
	HostedTable   string        // Table served by the hosted API (default: clients)
	HostedTimeout time.Duration // Per request timeout for the hosted API (default: 10s)

	DBUser     string // Direct mode credentials, each with a legacy lowercase alias
	DBPassword string
	DBHost     string // default: localhost
	DBPort     string // default: 5432
	DBName     string
	DBSSLMode  string // default: disable

	PoolMinConns   int32         // code default 1
	PoolMaxConns   int32         // code default 5
	AcquireTimeout time.Duration // Wait for a free connection before failing (default: 5s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment after merging in a .env file from the
// working directory, if there is one. Variables already set win over the
// file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return configFromEnv(), nil
}

func configFromEnv() Config {
	return Config{
		HostedURL:     strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		HostedKey:     strings.TrimSpace(os.Getenv("SUPABASE_KEY")),
		HostedTable:   getEnvOrDefault("CLIENTS_TABLE", "clients"),
		HostedTimeout: getEnvDurationOrDefault("SUPABASE_TIMEOUT", 10*time.Second),

		DBUser:     getEnvWithAlias("DB_USER", "user", ""),
		DBPassword: getEnvWithAlias("DB_PASSWORD", "password", ""),
		DBHost:     getEnvWithAlias("DB_HOST", "host", "localhost"),
		DBPort:     getEnvWithAlias("DB_PORT", "port", "5432"),
		DBName:     getEnvWithAlias("DB_NAME", "dbname", ""),
		DBSSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),

		PoolMinConns:   pgpool.DefaultMinConns,
		PoolMaxConns:   pgpool.DefaultMaxConns,
		AcquireTimeout: getEnvDurationOrDefault("DB_ACQUIRE_TIMEOUT", pgpool.DefaultAcquireTimeout),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// UseHosted reports whether hosted mode is configured. The choice is made
// once at startup.
func (c Config) UseHosted() bool {
	return c.HostedURL != "" && c.HostedKey != ""
}

// DSN renders the direct mode settings as a postgres:// URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	switch {
	case c.DBUser != "" && c.DBPassword != "":
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	case c.DBUser != "":
		u.User = url.User(c.DBUser)
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}

// Addr is the listen address. The service binds every interface.
func (c Config) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvWithAlias prefers key, then the legacy alias, then the default.
func getEnvWithAlias(key, alias, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return getEnvOrDefault(alias, defaultValue)
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if intValue, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
