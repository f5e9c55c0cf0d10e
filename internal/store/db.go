package store

import (
	"context"
	"database/sql"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, so a store can run
// against a plain connection pool or inside a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect hides the differences between the supported SQL databases.
// Store queries are written with '?' placeholders and rebound per dialect.
type Dialect interface {
	// Name returns the goose dialect name ("sqlite3" or "postgres").
	Name() string

	// Rebind rewrites '?' placeholders into the dialect's bind syntax.
	Rebind(query string) string

	// MapError translates driver errors into the store's sentinel errors.
	// Errors without a specific mapping are returned unchanged.
	MapError(err error) error
}
