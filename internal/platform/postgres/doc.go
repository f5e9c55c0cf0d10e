// Package postgres adapts the shared SQL stores to PostgreSQL through the
// pgx database/sql driver. It owns the PostgreSQL schema migrations and the
// mapping of PostgreSQL error codes onto store errors.
package postgres
