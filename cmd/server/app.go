package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/rolodex-api/internal/config"
	"github.com/phrazzld/rolodex-api/internal/metrics"
	"github.com/phrazzld/rolodex-api/internal/platform/postgres"
	"github.com/phrazzld/rolodex-api/internal/service"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Collector

	// The pool is opened lazily on the first request that needs it.
	pool *postgres.PoolManager

	recordStore   store.RecordStore
	recordService service.RecordService
}

// newApplication creates a new application instance with all dependencies
// initialized. No connection is made to the database here; opener is called
// on first use.
func newApplication(cfg *config.Config, logger *slog.Logger, opener postgres.Opener) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)

	app.pool = postgres.NewPoolManager(cfg.Database, opener, logger, app.metrics)
	executor := postgres.NewExecutor(cfg.Database.QueryTimeout, logger, app.metrics)
	app.recordStore = postgres.NewRecordStore(app.pool, executor, logger)

	var err error
	app.recordService, err = service.NewRecordService(app.recordStore, cfg.Records.PageSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create record service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It blocks until ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	app.pool.StartHealthCheck(ctx)

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if err := app.pool.Close(); err != nil {
		app.logger.Error("Error closing database connection pool", "error", err)
	}

	app.logger.Info("Application shutdown completed")
}
