package sqlstore

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/grindboard-api/internal/store"
)

// base carries what every store needs: a connection or transaction, the
// dialect and a component logger.
type base struct {
	db      store.DBTX
	dialect store.Dialect
	logger  *slog.Logger
}

func newBase(db store.DBTX, dialect store.Dialect, logger *slog.Logger, component string) base {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return base{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", component)),
	}
}

func (b base) withTx(tx *sql.Tx) base {
	return base{db: tx, dialect: b.dialect, logger: b.logger}
}

func (b base) q(query string) string {
	return b.dialect.Rebind(query)
}

// checkRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
