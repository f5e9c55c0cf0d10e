package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type positionsOptions struct {
	*rootOptions
	Username string
}

func newPositionsCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &positionsOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Maintain task positions",
	}

	renormalize := &cobra.Command{
		Use:   "renormalize",
		Short: "Rewrite a user's task positions to 1, 2, 3, ... keeping their order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			n, err := app.tasks.Renormalize(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to renormalize positions: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "renormalized %d tasks\n", n)
			return nil
		},
	}
	renormalize.Flags().StringVar(&opts.Username, "user", "", "username whose tasks to renormalize (required)")
	_ = renormalize.MarkFlagRequired("user")

	cmd.AddCommand(renormalize)
	return cmd
}
