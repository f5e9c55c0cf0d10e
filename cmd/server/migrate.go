package main

import (
	"fmt"
	"slices"

	"github.com/phrazzld/grindboard-api/internal/platform/database"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

// migrateCommands are the goose commands run against the configured database.
var migrateCommands = []string{"up", "down", "redo", "reset", "status", "version"}

type migrateOptions struct {
	*rootOptions
	Dir string
}

func newMigrateCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &migrateOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate [up|down|redo|reset|status|version|create NAME]",
		Short: "Manage database migrations",
		Long: `Run goose migrations embedded for the configured database driver.

"create NAME" writes a new empty SQL migration into --dir instead of touching
the database.

Example:
  server migrate up
  server migrate status --config ./config.yaml
  server migrate create add_due_dates --dir internal/platform/sqlite/migrations`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "directory for migrate create")

	return cmd
}

func runMigrate(cmd *cobra.Command, opts *migrateOptions, args []string) error {
	command := args[0]

	if command == "create" {
		if len(args) != 2 {
			return fmt.Errorf("migrate create requires a migration name")
		}
		if err := goose.Create(nil, opts.Dir, args[1], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		return nil
	}

	if !slices.Contains(migrateCommands, command) {
		return fmt.Errorf("unknown migrate command %q: must be one of %v or create", command, migrateCommands)
	}
	if len(args) > 1 {
		return fmt.Errorf("migrate %s takes no further arguments", command)
	}

	cfg, err := loadConfig(opts.rootOptions)
	if err != nil {
		return err
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx := cmd.Context()
	db, dialect, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	return database.Migrate(ctx, db, dialect, log, command)
}
