package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"discounts/internal/api"
	"discounts/internal/api/handler/v1handler"
	"discounts/internal/config"
	"discounts/internal/discount"
	"discounts/internal/user"
	"discounts/internal/worker"
	"discounts/pkg/hash"
	"discounts/pkg/logger"
	"discounts/pkg/token"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			hasher, err := hash.New(cfg.Auth.HashProvider, cfg.Auth.BcryptCost)
			if err != nil {
				logger.Fatal(ctx, "could not create hasher", zap.Error(err))
			}
			issuer, err := token.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
			if err != nil {
				logger.Fatal(ctx, "could not create token issuer", zap.Error(err))
			}

			users := user.New(strg, hasher, issuer)
			discounts := discount.New(strg, discount.Options{
				MaxRadiusKm:       cfg.Discounts.MaxRadiusKm,
				SweepUniquePeriod: cfg.Discounts.SweepUniquePeriod,
			})

			stopWebserver := setupServer(ctx, cfg, api.Deps{Deps: v1handler.Deps{
				Users:     users,
				Discounts: discounts,
			}})

			riverClient, err := worker.Start(ctx, strg.Pool, discounts, worker.Options{
				MaxWorkers:    cfg.Worker.MaxWorkers,
				SweepInterval: cfg.Discounts.SweepInterval,
			})
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(ctx, "stopping workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop workers", zap.Error(err))
			}
		},
	}

	return cmd
}
