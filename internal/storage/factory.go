// Package storage opens the repository selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nikolacukic/exercise-tracker/db"
	"github.com/nikolacukic/exercise-tracker/internal/config"
	"github.com/nikolacukic/exercise-tracker/internal/domain"
	"github.com/nikolacukic/exercise-tracker/internal/persistence/postgres"
	"github.com/nikolacukic/exercise-tracker/internal/persistence/sqlite"
)

// Store is a repository that owns its connection pool.
type Store interface {
	domain.Repository
	ApplySchema(ctx context.Context, script string) error
	Close() error
}

// Open connects to the configured driver.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewRepository(pool, logger), nil
	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// Provision applies the embedded schema for the configured driver.
func Provision(ctx context.Context, store Store, driver string) error {
	script, err := db.Schema(driver)
	if err != nil {
		return err
	}
	return store.ApplySchema(ctx, script)
}
