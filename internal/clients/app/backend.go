package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/aussiebroadwan/mercia/internal/clients/store/drivers/hosted"
	"github.com/aussiebroadwan/mercia/internal/clients/store/drivers/postgres"
	"github.com/aussiebroadwan/mercia/pkg/pgpool"
	"github.com/prometheus/client_golang/prometheus"
)

// openStore picks the storage backend from cfg. Hosted mode wins when both
// its URL and key are set; otherwise a PostgreSQL pool is opened and its
// metrics are registered on reg.
func openStore(ctx context.Context, cfg Config, logger *slog.Logger, reg prometheus.Registerer) (store.Store, error) {
	if cfg.UseHosted() {
		st, err := hosted.NewStore(hosted.Config{
			URL:     cfg.HostedURL,
			Key:     cfg.HostedKey,
			Table:   cfg.HostedTable,
			Timeout: cfg.HostedTimeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("storage backend selected", "backend", store.ModeHosted, "table", cfg.HostedTable)
		return st, nil
	}

	if cfg.DBPassword != "" && cfg.DBUser == "" {
		return nil, fmt.Errorf("%w: DB_PASSWORD is set but DB_USER is empty", store.ErrConfiguration)
	}

	pool, err := pgpool.New(ctx, pgpool.Config{
		DSN:            cfg.DSN(),
		MinConns:       cfg.PoolMinConns,
		MaxConns:       cfg.PoolMaxConns,
		AcquireTimeout: cfg.AcquireTimeout,
	})
	if err != nil {
		if errors.Is(err, pgpool.ErrInvalidConfig) {
			return nil, fmt.Errorf("%w: %w", store.ErrConfiguration, err)
		}
		return nil, fmt.Errorf("open database pool: %w", err)
	}

	if err := reg.Register(pgpool.NewCollector(pool, "clients")); err != nil {
		pool.Close()
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	logger.Info("storage backend selected",
		"backend", store.ModeDirect,
		"host", cfg.DBHost,
		"port", cfg.DBPort,
		"database", cfg.DBName,
		"max_conns", cfg.PoolMaxConns,
	)
	return postgres.NewStore(pool), nil
}

// ensureTable runs the startup table check. A hosted table that is missing
// or unreachable only logs a warning so an operator can provision it later;
// a failed CREATE TABLE in direct mode is fatal.
func ensureTable(ctx context.Context, st store.Store, logger *slog.Logger) error {
	ok, err := st.EnsureTable(ctx)
	switch {
	case err == nil && ok:
		logger.Info("clients table ready", "backend", st.Mode())
		return nil
	case st.Mode() == store.ModeHosted:
		if err != nil {
			logger.Warn("could not verify clients table", "backend", st.Mode(), "error", err)
		} else {
			logger.Warn("clients table not found; create it in the hosted project", "backend", st.Mode())
		}
		return nil
	case err != nil:
		return fmt.Errorf("ensure clients table: %w", err)
	default:
		return fmt.Errorf("ensure clients table: %w", store.ErrStatement)
	}
}
