package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
	"github.com/spf13/cobra"
)

type hashPasswordOptions struct {
	Scheme string
}

func newHashPasswordCommand() *cobra.Command {
	opts := &hashPasswordOptions{}

	cmd := &cobra.Command{
		Use:   "hash-password [PASSWORD]",
		Short: "Print a password hash for seeding users directly in the database",
		Long: `Hash a password with the given scheme. Without an argument the password
is read from the first line of stdin.

Example:
  server hash-password --scheme bcrypt 'correct horse'
  echo 'correct horse' | server hash-password`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHashPassword(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Scheme, "scheme", auth.SchemePBKDF2, "hash scheme (pbkdf2|bcrypt)")

	return cmd
}

func runHashPassword(cmd *cobra.Command, opts *hashPasswordOptions, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password from stdin: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	hasher, err := auth.NewPasswordHasher(opts.Scheme)
	if err != nil {
		return err
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
