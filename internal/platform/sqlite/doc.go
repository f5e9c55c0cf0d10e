// Package sqlite adapts the shared SQL stores to SQLite through
// github.com/mattn/go-sqlite3. It owns the SQLite schema migrations, the
// driver error mapping and the connection string defaults.
package sqlite
