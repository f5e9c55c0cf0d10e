package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	ConfigPath string
}

// newRootCommand creates the root command with every subcommand attached.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Grindboard task tracker API",
		Long: `Grindboard keeps a personal, ordered task list with tags.

Without a subcommand, use "server serve" to run the HTTP API. Configuration
comes from config.yaml, the file given by --config, and GRINDBOARD_*
environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"path to a config file (default: ./config.yaml or $GRINDBOARD_CONFIG)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newPositionsCommand(opts))
	cmd.AddCommand(newHashPasswordCommand())

	return cmd
}
