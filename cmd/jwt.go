package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"discounts/internal/config"
	"discounts/pkg/logger"
	"discounts/pkg/token"
)

// JWTCommand constructs the 'jwt' subcommand that generates a signed session
// token for a given subject (user ID) and TTL using the configured secret.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates JWT token for given user ID",
		Run: func(cmd *cobra.Command, args []string) {
			subject, _ := cmd.Flags().GetString("subject")
			email, _ := cmd.Flags().GetString("email")
			TTL, _ := cmd.Flags().GetDuration("ttl")

			issuer, err := token.NewJWT(cfg.Auth.JWTSecret, TTL)
			if err != nil {
				logger.Fatal(context.Background(), "could not create token issuer", zap.Error(err))
			}

			signed, err := issuer.Issue(token.Claims{UserID: subject, Email: email})
			if err != nil {
				logger.Fatal(context.Background(), "could not sign JWT", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "JWT subject (e.g., user ID)")
	cmd.Flags().String("email", "", "Email claim to embed in the token")
	cmd.Flags().Duration("ttl", token.DefaultTTL, "Token TTL (e.g., 30s, 15m, 1h)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
