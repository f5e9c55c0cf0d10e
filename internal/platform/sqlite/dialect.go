package sqlite

import (
	"embed"
	"net/url"
	"strings"

	"github.com/phrazzld/grindboard-api/internal/store"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// Migrations holds the goose migrations for the SQLite schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// defaultParams are applied to every DSN that does not set them already.
// Foreign keys are off by default in SQLite; immediate transactions take the
// write lock at BEGIN so concurrent read-modify-write transactions queue on
// the busy timeout instead of failing on lock upgrade.
var defaultParams = [][2]string{
	{"_foreign_keys", "on"},
	{"_busy_timeout", "5000"},
	{"_journal_mode", "WAL"},
	{"_txlock", "immediate"},
}

// Dialect implements store.Dialect for SQLite.
type Dialect struct{}

var _ store.Dialect = Dialect{}

// Name returns the goose dialect name.
func (Dialect) Name() string { return "sqlite3" }

// Rebind returns the query unchanged; SQLite understands '?' natively.
func (Dialect) Rebind(query string) string { return query }

// MapError implements store.Dialect.
func (Dialect) MapError(err error) error { return MapError(err) }

// DSN adds the default connection parameters to dsn, keeping any that the
// caller set explicitly. A bare path is accepted and turned into a file: URI.
func DSN(dsn string) string {
	base, rawQuery, _ := strings.Cut(dsn, "?")
	if !strings.HasPrefix(base, "file:") && base != ":memory:" {
		base = "file:" + base
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	for _, p := range defaultParams {
		if values.Get(p[0]) == "" {
			values.Set(p[0], p[1])
		}
	}

	return base + "?" + values.Encode()
}
