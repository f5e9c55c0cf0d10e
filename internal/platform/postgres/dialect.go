package postgres

import (
	"embed"
	"strconv"
	"strings"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// DriverName is the database/sql driver registered by pgx/stdlib.
const DriverName = "pgx"

// Migrations holds the goose migrations for the PostgreSQL schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Dialect implements store.Dialect for PostgreSQL.
type Dialect struct{}

var _ store.Dialect = Dialect{}

// Name returns the goose dialect name.
func (Dialect) Name() string { return "postgres" }

// Rebind implements store.Dialect.
func (Dialect) Rebind(query string) string { return Rebind(query) }

// MapError implements store.Dialect.
func (Dialect) MapError(err error) error { return MapError(err) }

// Rebind rewrites '?' placeholders into $1, $2, ... Placeholders inside
// single-quoted string literals are left alone.
func Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
