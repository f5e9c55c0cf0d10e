package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/grindboard-api/internal/importer"
	"github.com/spf13/cobra"
)

type importOptions struct {
	*rootOptions
	Username string
}

func newImportCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &importOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import tasks and tags from a YAML file",
		Long: `Append the tasks of a YAML document to an existing user's board.

Example:
  server import tasks.yaml --user alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Username, "user", "", "username to import for (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runImport(cmd *cobra.Command, opts *importOptions, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx := cmd.Context()
	app, err := openApplication(ctx, opts.rootOptions)
	if err != nil {
		return err
	}
	defer app.cleanup()

	userID, err := app.lookupUser(ctx, opts.Username)
	if err != nil {
		return err
	}

	result, err := importer.ImportYAML(ctx, f, userID, app.tasks, app.tags)
	if err != nil {
		return fmt.Errorf("import failed after %d tasks: %w", result.Tasks, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks with %d tags\n", result.Tasks, result.Tags)
	return nil
}
