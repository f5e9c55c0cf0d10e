// Package testdb provides migrated databases for store, service and API tests.
//
// SQLite databases are always available and live in t.TempDir(). PostgreSQL
// databases are used only when DATABASE_URL is set; otherwise those tests skip.
package testdb
