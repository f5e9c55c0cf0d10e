package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/grindboard-api/internal/config"
	"github.com/phrazzld/grindboard-api/internal/platform/postgres"
	"github.com/phrazzld/grindboard-api/internal/platform/sqlite"
	"github.com/phrazzld/grindboard-api/internal/redact"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// Supported values of config.DatabaseConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const pingTimeout = 5 * time.Second

// DialectFor returns the store dialect for a configured driver name.
func DialectFor(driver string) (store.Dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Dialect{}, nil
	case DriverPostgres:
		return postgres.Dialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open establishes a connection pool for cfg, verifies it with a ping and
// returns it together with the matching dialect.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, store.Dialect, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	driverName, dsn := postgres.DriverName, cfg.URL
	if cfg.Driver == DriverSQLite {
		driverName, dsn = sqlite.DriverName, sqlite.DSN(cfg.URL)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("driver", cfg.Driver),
		slog.String("url", redact.String(cfg.URL)),
		slog.Int("max_open_conns", cfg.MaxOpenConns))

	return db, dialect, nil
}
