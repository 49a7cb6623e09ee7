package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cat-registry/internal/domain/cats"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO cats (name, breed, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		c.Name,
		c.Breed,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err := row.Scan(&c.ID); err != nil {
		return cats.Cat{}, err
	}
	return c, nil
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cats
		SET
			name = $2,
			breed = $3,
			updated_at = $4
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		c.Breed,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, breed, created_at, updated_at
		FROM cats
		WHERE id = $1
	`, id)

	var c cats.Cat
	if err := row.Scan(&c.ID, &c.Name, &c.Breed, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}
	return c, nil
}

func (r *CatsRepo) List(ctx context.Context) ([]cats.Cat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, breed, created_at, updated_at
		FROM cats
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		var c cats.Cat
		if err := rows.Scan(&c.ID, &c.Name, &c.Breed, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}
