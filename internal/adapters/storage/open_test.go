package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-registry/internal/config"
	"cat-registry/internal/domain/cats"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), config.DriverMemory, "", false)
	require.NoError(t, err)
	assert.NotNil(t, s.Repo)
	assert.NoError(t, s.Close())
}

func TestOpen_SQLiteMigratesAndPersists(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "cats.db")

	s, err := Open(ctx, config.DriverSQLite, dsn, true)
	require.NoError(t, err)
	_, err = s.Repo.Create(ctx, cats.Cat{Name: "Tom", Breed: "Tabby", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reabrir: los datos siguen ahí
	s, err = Open(ctx, config.DriverSQLite, dsn, true)
	require.NoError(t, err)
	defer s.Close()

	items, err := s.Repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tom", items[0].Name)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Driver("mongo"), "x", false)
	require.Error(t, err)
}
