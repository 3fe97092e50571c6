package database

import (
	"context"
	"errors"
)

// ErrConflict marks a uniqueness/integrity violation reported by the store.
// Adapters wrap driver-specific duplicate-key errors with it so callers can
// test with errors.Is without importing driver packages.
var ErrConflict = errors.New("integrity conflict")

// Adapter executes parameterized statements against one database provider.
type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// InsertReturningID inserts one row and returns the generated primary key.
	InsertReturningID(ctx context.Context, table string, row map[string]any) (int64, error)
	// Insert inserts one row into a table without a generated key
	// (association tables with composite primary keys).
	Insert(ctx context.Context, table string, row map[string]any) error
	Update(ctx context.Context, table string, set, where map[string]any) error
}

func NewAdapter(provider string) Adapter {
	switch provider {
	case "postgresql", "postgres":
		return NewPostgresAdapter()
	case "mysql":
		return NewMySQLAdapter()
	case "sqlite", "sqlite3":
		return NewSQLiteAdapter()
	default:
		return NewPostgresAdapter()
	}
}
