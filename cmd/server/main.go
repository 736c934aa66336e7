// Package main is the entry point for the stockbook API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockbook/internal/config"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/auth"
	"stockbook/internal/domain/store"
	v1 "stockbook/internal/infrastructure/http/v1"
	"stockbook/internal/infrastructure/storage"
	"stockbook/pkg/logger"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stockbook: %v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)
	log.Infow("starting stockbook server", "env", cfg.App.Env, "storage_driver", cfg.Storage.Driver)

	// --- Storage ---
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	ids := id.System{}
	session, err := store.Open(ctx, backend.Repository, store.Seed(ids))
	if err != nil {
		return fmt.Errorf("open ledger document: %w", err)
	}

	if backend.Pool != nil {
		go backend.Pool.ReportStats(ctx, time.Minute)
	}

	// --- Auth ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWT.Secret)
	jwtConfig.AccessTokenTTL = cfg.JWT.TTL

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Session:       session,
		IDs:           ids,
		JWT:           auth.NewJWTService(jwtConfig, nil),
		Logger:        log,
		Pinger:        backend.Pinger,
		StorageDriver: backend.Driver,
		Version:       version,
		Debug:         cfg.App.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful shutdown ---
	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
	return nil
}
