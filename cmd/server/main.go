package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ngoachoi-cell/breaklistweb/internal/api"
	"github.com/ngoachoi-cell/breaklistweb/internal/config"
	"github.com/ngoachoi-cell/breaklistweb/internal/metrics"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
	"github.com/ngoachoi-cell/breaklistweb/internal/store"
)

func main() {
	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// State store
	var st store.Store
	switch cfg.StateBackend {
	case config.BackendSQLite:
		db, err := store.OpenSQLite(cfg.StateDBPath, cfg.StateHistory)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		st = db
		logger.Info("using sqlite state store", "path", cfg.StateDBPath, "history", cfg.StateHistory)
	default:
		fs, err := store.NewFileStore(cfg.StatePath, logger)
		if err != nil {
			logger.Error("failed to open state file", "error", err)
			os.Exit(1)
		}
		st = fs
		logger.Info("using file state store", "path", cfg.StatePath)
	}

	// Schedule service
	repo := schedule.NewRepository(st, cfg.Window(), nil)
	svc := schedule.NewService(repo, schedule.UUIDGenerator{}, logger)

	// Metrics
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// Router
	router := api.NewRouter(svc, m, cfg.MaxUploadBytes(), logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("breaklist server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
