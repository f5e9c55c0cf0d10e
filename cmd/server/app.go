package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/phrazzld/grindboard-api/internal/api"
	"github.com/phrazzld/grindboard-api/internal/config"
	"github.com/phrazzld/grindboard-api/internal/platform/database"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/phrazzld/grindboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/grindboard-api/internal/service"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger  *slog.Logger
	db      *sql.DB
	dialect store.Dialect

	users  service.UserService
	tasks  service.TaskService
	tags   service.TagService
	issuer auth.TokenIssuer
}

// loadConfig resolves the config file from --config, falling back to
// GRINDBOARD_CONFIG and then ./config.yaml.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv(config.ConfigFileEnv)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openApplication loads configuration, sets up logging, opens the database
// and wires every service. The caller must call cleanup.
func openApplication(ctx context.Context, opts *rootOptions) (*application, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("auth_strategy", cfg.Auth.Strategy))

	db, dialect, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, dialect, log, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	app, err := newApplication(cfg, log, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect store.Dialect,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		dialect: dialect,
	}

	userStore := sqlstore.NewUserStore(db, dialect, logger)
	taskStore := sqlstore.NewTaskStore(db, dialect, logger)
	tagStore := sqlstore.NewTagStore(db, dialect, logger)
	tokenStore := sqlstore.NewTokenStore(db, dialect, logger)

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.issuer, err = auth.NewTokenIssuer(cfg.Auth, db, tokenStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	logger.Info("authentication initialized",
		slog.String("strategy", cfg.Auth.Strategy),
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.users, err = service.NewUserService(db, userStore, hasher, cfg.Auth.AutoRegister, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.tasks, err = service.NewTaskService(db, taskStore, tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.tags, err = service.NewTagService(db, taskStore, tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// router builds the HTTP handler for the application.
func (app *application) router() http.Handler {
	return api.NewRouter(api.Services{
		Users:  app.users,
		Tasks:  app.tasks,
		Tags:   app.tags,
		Issuer: app.issuer,
	}, app.logger)
}

// lookupUser resolves a username given on the command line.
func (app *application) lookupUser(ctx context.Context, username string) (int64, error) {
	user, err := app.users.GetUserByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	return user.ID, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}
}
