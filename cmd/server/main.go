// Package main is the entry point for the task manager API server.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Its job is to:
//  1. Read configuration (file, env vars, flags)
//  2. Create dependencies (logger, database connection)
//  3. Start the application
//
// All actual logic lives in imported packages (internal/server, internal/service, etc.).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/sakif/task-manager/internal/config"
	"github.com/sakif/task-manager/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// The config file is optional. Every key can also be set through the
	// environment, e.g. TASKMANAGER_AUTH_JWT_SECRET or TASKMANAGER_DATABASE_DSN.
	configPath := flag.String("config", os.Getenv("TASKMANAGER_CONFIG"), "path to a YAML/TOML/JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// No configured logger yet, so fall back to the default one.
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger := cfg.Log.Logger(os.Stdout)
	slog.SetDefault(logger)

	// === 3. OPEN THE STORE ===
	// Connects, pings and runs migrations. Fails fast if any of it goes wrong.
	ctx := context.Background()
	store, err := server.OpenStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open database",
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.New(*cfg, store, logger)
	if err != nil {
		store.DB.Close()
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM, then shuts down and closes the store.
	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
