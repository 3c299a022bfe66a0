package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"discounts/internal/config"
	"discounts/pkg/hash"
	"discounts/pkg/logger"
)

// hashCommand constructs the 'hash' subcommand that hashes a password with
// the configured provider. Useful for seeding users by hand.
func hashCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hashes a password with the configured provider",
		Run: func(cmd *cobra.Command, args []string) {
			password, _ := cmd.Flags().GetString("password")

			hasher, err := hash.New(cfg.Auth.HashProvider, cfg.Auth.BcryptCost)
			if err != nil {
				logger.Fatal(context.Background(), "could not create hasher", zap.Error(err))
			}

			hashed, err := hasher.Hash(password)
			if err != nil {
				logger.Fatal(context.Background(), "could not hash password", zap.Error(err))
			}

			fmt.Println(hashed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("password", "", "Password to hash")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
