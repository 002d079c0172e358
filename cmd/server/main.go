// Package main implements the entry point for the rolodex API server, which
// stores contact records and serves create, list, search, update and delete
// operations over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/rolodex-api/internal/config"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/platform/postgres"
)

// main is the entry point for the rolodex-api server.
// It initializes configuration and logging, wires dependencies and serves
// HTTP until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := initializeApp()
	if err != nil {
		stop()
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, slog.Default(), postgres.OpenPgx)
	if err != nil {
		stop()
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		slog.Error("Application exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config and any initialization error.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"page_size", cfg.Records.PageSize)

	// The endpoint is logged without credentials.
	slog.Debug("Database configuration",
		"url_present", cfg.Database.URL != "",
		"host", cfg.Database.Host,
		"sslmode", postgres.SSLMode(cfg.Database))

	return cfg, nil
}
