// Package catstest tiene la batería común que debe pasar todo cats.Repository.
package catstest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-registry/internal/domain/cats"
)

// RunRepositoryContract corre los casos contra un repo recién creado por newRepo.
func RunRepositoryContract(t *testing.T, newRepo func(t *testing.T) cats.Repository) {
	t.Helper()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	seed := func(name, breed string) cats.Cat {
		return cats.Cat{Name: name, Breed: breed, CreatedAt: ts, UpdatedAt: ts}
	}

	t.Run("create assigns sequential ids", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		a, err := repo.Create(ctx, seed("Tom", "Tabby"))
		require.NoError(t, err)
		b, err := repo.Create(ctx, seed("Felix", "Siamese"))
		require.NoError(t, err)

		assert.Equal(t, int64(1), a.ID)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("get returns stored fields", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		created, err := repo.Create(ctx, seed("Tom", "Tabby"))
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tom", got.Name)
		assert.Equal(t, "Tabby", got.Breed)
		assert.True(t, got.CreatedAt.Equal(ts), "created_at %v", got.CreatedAt)
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		_, err := newRepo(t).GetByID(context.Background(), 42)
		assert.ErrorIs(t, err, cats.ErrNotFound)
	})

	t.Run("update touches only the target", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		a, err := repo.Create(ctx, seed("Tom", "Tabby"))
		require.NoError(t, err)
		b, err := repo.Create(ctx, seed("Felix", "Siamese"))
		require.NoError(t, err)

		a.Name = "Thomas"
		a.UpdatedAt = ts.Add(time.Hour)
		require.NoError(t, repo.Update(ctx, a))

		gotA, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Thomas", gotA.Name)
		assert.True(t, gotA.UpdatedAt.Equal(ts.Add(time.Hour)))

		gotB, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Felix", gotB.Name)
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		c := seed("Ghost", "None")
		c.ID = 99
		assert.ErrorIs(t, newRepo(t).Update(context.Background(), c), cats.ErrNotFound)
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		c, err := repo.Create(ctx, seed("Tom", "Tabby"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, c.ID))
		_, err = repo.GetByID(ctx, c.ID)
		assert.ErrorIs(t, err, cats.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, c.ID), cats.ErrNotFound)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		for _, name := range []string{"A", "B", "C"} {
			_, err := repo.Create(ctx, seed(name, "Mixed"))
			require.NoError(t, err)
		}

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "A", items[0].Name)
		assert.Equal(t, "C", items[2].Name)
	})

	t.Run("list on empty store", func(t *testing.T) {
		items, err := newRepo(t).List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
