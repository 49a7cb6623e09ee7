package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"cat-registry/internal/domain/cats"
)

type catRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]cats.Cat
}

func NewCatRepo() cats.Repository {
	return &catRepo{
		nextID: 1,
		byID:   make(map[int64]cats.Cat),
	}
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID != 0 {
		return cats.Cat{}, errors.New("cat id is assigned by the store")
	}
	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = c
	return c, nil
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[c.ID]
	if !exists {
		return cats.ErrNotFound
	}
	// created_at es inmutable
	c.CreatedAt = current.CreatedAt
	r.byID[c.ID] = c
	return nil
}

func (r *catRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return cats.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *catRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

func (r *catRepo) List(ctx context.Context) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}

	// Orden estable por id asc (igual que los repos SQL)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}
