// Package storage elige el adapter de cats.Repository según config.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"cat-registry/internal/adapters/storage/memory"
	"cat-registry/internal/adapters/storage/postgres"
	"cat-registry/internal/adapters/storage/sqlite"
	"cat-registry/internal/config"
	"cat-registry/internal/domain/cats"
)

// Store es el repo elegido más lo que haga falta cerrar al salir.
type Store struct {
	Repo cats.Repository
	db   *sql.DB
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Open abre el backend configurado. Con migrate=true aplica el schema.
func Open(ctx context.Context, driver config.Driver, dsn string, migrate bool) (*Store, error) {
	switch driver {
	case config.DriverMemory, "":
		return &Store{Repo: memory.NewCatRepo()}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Store{Repo: postgres.NewCatsRepo(db), db: db}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if migrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Store{Repo: sqlite.NewCatsRepo(db), db: db}, nil

	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}
}
