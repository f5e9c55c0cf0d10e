// Package sqlstore implements the internal/store interfaces on database/sql.
//
// Queries are written once with '?' placeholders and rebound through a
// store.Dialect, so the same stores serve SQLite and PostgreSQL. Driver
// errors are translated by the dialect's MapError into store sentinels.
package sqlstore
