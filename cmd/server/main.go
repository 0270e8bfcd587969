package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gallerydesk/internal/config"
	"gallerydesk/internal/core"
	"gallerydesk/internal/logging"
	"gallerydesk/internal/watch"
	"gallerydesk/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"watch_enabled", cfg.Import.WatchEnabled,
	)

	// The store is the single source of truth for all three collections.
	// Nothing is persisted; a restart returns to the seed data.
	store := core.NewStore()
	store.Seed()

	importer := core.NewImporter(store)
	importer.OnComplete(func(result core.ImportResult) {
		slog.Info("import applied",
			"kind", result.Kind,
			"file", result.FileName,
			"rows", result.Rows,
			"import_id", result.ImportID,
		)
	})

	server := web.NewServer(store, importer, cfg)

	// Background jobs get a cancellable context so shutdown stops them
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	if cfg.Import.WatchEnabled {
		watcher, err := watch.New(cfg.Import.WatchDir, importer)
		if err != nil {
			slog.Error("failed to create drop-folder watcher", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := watcher.Run(jobCtx); err != nil && jobCtx.Err() == nil {
				slog.Error("drop-folder watcher stopped", "error", err)
			}
		}()
		slog.Info("drop-folder watcher started", "dir", cfg.Import.WatchDir)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
