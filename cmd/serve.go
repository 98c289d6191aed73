package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/database"
	"github.com/DhavalSuthar-24/tourney/internal/logging"
	"github.com/DhavalSuthar-24/tourney/internal/metrics"
	"github.com/DhavalSuthar-24/tourney/internal/payment"
	"github.com/DhavalSuthar-24/tourney/internal/scheduler"
	"github.com/DhavalSuthar-24/tourney/routes"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			cfg := config.GetConfig()

			logger, err := logging.New(cfg.App.Env)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			if !skipMigrate {
				if err := database.Migrate(config.DB); err != nil {
					return err
				}
				logger.Info("auto migrate successful")
			}

			metrics.Register()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			jobs, err := scheduler.New(payment.NewRepository(config.DB), cfg.WebhookRetention(), cfg.WebhookPruneInterval(), logger)
			if err != nil {
				return err
			}
			jobs.Start()
			defer func() {
				if err := jobs.Shutdown(); err != nil {
					logger.Warn("scheduler shutdown", zap.Error(err))
				}
			}()

			provider := payment.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.StripeTimeout())
			srv := &http.Server{
				Addr:              ":" + cfg.App.Port,
				Handler:           routes.SetupRoutes(config.DB, cfg, provider, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("failed to run server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not run AutoMigrate on start")
	return cmd
}
