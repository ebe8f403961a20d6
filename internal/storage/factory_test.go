package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolacukic/exercise-tracker/internal/config"
)

func TestOpenSQLiteAndProvisionTwice(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		Storage: config.StorageConfig{Driver: config.DriverSQLite},
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "tracker.db")},
	}

	store, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, Provision(ctx, store, cfg.Storage.Driver))
	require.NoError(t, Provision(ctx, store, cfg.Storage.Driver))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Storage: config.StorageConfig{Driver: "mongo"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}
