package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/grindboard-api/internal/platform/postgres"
	"github.com/phrazzld/grindboard-api/internal/platform/sqlite"
	"github.com/phrazzld/grindboard-api/internal/store"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

const migrationsDir = "migrations"

// goose keeps its dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It does not exit; goose returns the error
// to the caller as well.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func migrationsFor(dialect store.Dialect) (fs.FS, error) {
	switch dialect.Name() {
	case sqlite.Dialect{}.Name():
		return sqlite.Migrations, nil
	case postgres.Dialect{}.Name():
		return postgres.Migrations, nil
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect.Name())
	}
}

// Migrate runs a goose command ("up", "down", "status", "version", "reset",
// "redo") against db using the migrations embedded for dialect.
func Migrate(
	ctx context.Context,
	db *sql.DB,
	dialect store.Dialect,
	logger *slog.Logger,
	command string,
	args ...string,
) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("correlation_id", uuid.NewString()))

	migrations, err := migrationsFor(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetTableName(MigrationTableName)

	if err := goose.SetDialect(dialect.Name()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	logger.Info("migration command completed")
	return nil
}
