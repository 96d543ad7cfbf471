package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/mercia/internal/clients/http"
	"github.com/aussiebroadwan/mercia/internal/clients/service"
	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/aussiebroadwan/mercia/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	startupTimeout = 30 * time.Second
)

// Application wires the client registry together.
type Application struct {
	cfg      Config
	logger   *slog.Logger
	registry *prometheus.Registry

	db            store.Store
	clientService *service.ClientService

	server *http.Server
	router *httpapi.Router
}

// New selects the storage backend, prepares the clients table and builds
// the HTTP server. Nothing is served until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "clients-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}

	app.clientService = &service.ClientService{Store: app.db}

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler exposes the fully wired router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("clients service starting",
		"addr", app.server.Addr,
		"backend", app.db.Mode(),
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and then
// drains the storage backend.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down clients service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing storage backend", "error", err)
		return err
	}

	app.logger.Info("clients service stopped")
	return nil
}

func (app *Application) initStore(ctx context.Context) error {
	db, err := openStore(ctx, app.cfg, app.logger, app.registry)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	app.db = db

	if err := ensureTable(ctx, db, app.logger); err != nil {
		_ = db.Close()
		return err
	}
	return nil
}

func (app *Application) initHTTP() error {
	router, err := httpapi.NewRouter(BuildVersion, app.clientService, app.logger, app.registry)
	if err != nil {
		return err
	}
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
