package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/grindboard-api/internal/ciutil"
	"github.com/phrazzld/grindboard-api/internal/config"
	"github.com/phrazzld/grindboard-api/internal/platform/database"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// TestTimeout bounds setup work against a database.
const TestTimeout = 10 * time.Second

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// NewSQLite returns a migrated SQLite database in a temporary directory.
// The database is closed when the test finishes.
func NewSQLite(t testing.TB) (*sql.DB, store.Dialect) {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		URL:          "file:" + filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}
	return open(t, cfg)
}

// NewPostgres returns the PostgreSQL database named by
// GRINDBOARD_TEST_DATABASE_URL or DATABASE_URL with all migrations applied and
// every table emptied. The test is skipped when neither is set.
func NewPostgres(t testing.TB) (*sql.DB, store.Dialect) {
	t.Helper()

	url := ciutil.TestDatabaseURL(quiet)
	if url == "" {
		if ciutil.IsCI() {
			t.Skip("no test database URL configured in CI - skipping PostgreSQL integration test")
		}
		t.Skip(ciutil.EnvTestDatabaseURL + " not set - skipping PostgreSQL integration test")
	}

	cfg := config.DatabaseConfig{
		Driver:       database.DriverPostgres,
		URL:          url,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}
	db, dialect := open(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if _, err := db.ExecContext(ctx,
		"TRUNCATE auth_tokens, task_tags, tags, tasks, users RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}

	return db, dialect
}

// ForEachDialect runs fn as a subtest against SQLite and, when a test
// database URL is set, against PostgreSQL.
func ForEachDialect(t *testing.T, fn func(t *testing.T, db *sql.DB, dialect store.Dialect)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		db, dialect := NewSQLite(t)
		fn(t, db, dialect)
	})
	t.Run("postgres", func(t *testing.T) {
		db, dialect := NewPostgres(t)
		fn(t, db, dialect)
	})
}

func open(t testing.TB, cfg config.DatabaseConfig) (*sql.DB, store.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, dialect, err := database.Open(ctx, cfg, quiet)
	if err != nil {
		t.Fatalf("failed to open %s test database: %v", cfg.Driver, err)
	}
	t.Cleanup(func() { CleanupDB(t, db) })

	if err := database.Migrate(ctx, db, dialect, quiet, "up"); err != nil {
		t.Fatalf("failed to migrate %s test database: %v", cfg.Driver, err)
	}

	return db, dialect
}

// CleanupDB closes a database connection, logging any error.
func CleanupDB(t testing.TB, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
