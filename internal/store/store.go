// Package store persists transaction records. Stores are collaborators of
// the accounting engine: they hand back snapshots and never validate
// accounting rules themselves.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleared-dev/cashbook/internal/config"
	"github.com/cleared-dev/cashbook/internal/model"
)

var (
	// ErrNotFound is returned for an unknown transaction ID.
	ErrNotFound = errors.New("transaction not found")
	// ErrDuplicate is returned when adding an ID that already exists.
	ErrDuplicate = errors.New("duplicate transaction id")
)

// Store is a transaction repository.
type Store interface {
	List(ctx context.Context) ([]model.Transaction, error)
	Add(ctx context.Context, tx model.Transaction) error
	Update(ctx context.Context, tx model.Transaction) error
	Delete(ctx context.Context, id string) error
	Close() error
}

var (
	_ Store = (*CSVStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Open returns the store configured for the project in dir.
func Open(ctx context.Context, cfg *config.Config, dir string) (Store, error) {
	path := cfg.StoragePath(dir)
	switch cfg.Storage.Backend {
	case config.BackendCSV:
		return NewCSVStore(path), nil
	case config.BackendSQLite:
		return NewSQLiteStore(ctx, path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// Init creates the empty store for a new project.
func Init(ctx context.Context, cfg *config.Config, dir string) error {
	s, err := Open(ctx, cfg, dir)
	if err != nil {
		return err
	}
	defer s.Close()

	if c, ok := s.(*CSVStore); ok {
		return c.ensure()
	}
	return nil
}
