// Package storage opens the document repository selected by configuration.
package storage

import (
	"context"
	"fmt"

	"stockbook/internal/config"
	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/storage/file"
	"stockbook/internal/infrastructure/storage/memory"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/snapshot"
	"stockbook/internal/infrastructure/storage/sqlite"
	"stockbook/pkg/logger"
)

// Pinger checks a storage backend's connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend is an opened repository plus what the caller needs to manage it.
type Backend struct {
	Repository store.Repository
	Driver     string

	// Pinger is nil for backends without a connection
	Pinger Pinger

	// Pool is set for the postgres driver
	Pool *postgres.Pool

	close func()
}

// Close releases the backend's connections.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open builds the repository for cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (*Backend, error) {
	codec, err := snapshot.NewCodec(cfg.CompressThreshold)
	if err != nil {
		return nil, fmt.Errorf("create snapshot codec: %w", err)
	}

	b := &Backend{Driver: cfg.Driver}

	switch cfg.Driver {
	case config.DriverMemory:
		b.Repository = memory.New(codec)

	case config.DriverFile:
		b.Repository = file.New(cfg.Path, codec)

	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.Path, cfg.DocumentKey, codec)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		b.Repository = repo
		b.Pinger = repo
		b.close = func() {
			if err := repo.Close(); err != nil {
				logger.Warn(ctx, "close sqlite failed", "error", err)
			}
		}

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := postgres.NewDocumentRepo(pool, cfg.DocumentKey, codec)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		b.Repository = repo
		b.Pinger = pool
		b.Pool = pool
		b.close = pool.Close

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	logger.Info(ctx, "storage opened", "driver", cfg.Driver)
	return b, nil
}
