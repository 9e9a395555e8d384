package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"travelagency/config"
	_ "travelagency/docs"
	"travelagency/internal/adapters/email"
	deliveryhttp "travelagency/internal/delivery/http"
	"travelagency/internal/delivery/http/controllers"
	"travelagency/internal/repository/postgres"
	"travelagency/internal/services"
)

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until SIGINT or SIGTERM.

Configuration is read from the environment (and .env outside production).
Pending migrations are applied first when MIGRATE_ON_START=true or --migrate is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate || cfg.MigrateOnStart {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	handler, err := newHandler(cfg, logger, db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newHandler wires repositories, services and controllers into the router.
func newHandler(cfg *config.Config, logger *slog.Logger, db *sql.DB) (http.Handler, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	clientRepo := postgres.NewClientRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)

	clientService := services.NewClientService(clientRepo, emailService, logger, cfg.DBTimeout)
	tripService := services.NewTripService(tripRepo, cfg.DBTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, clientRepo, cfg.DBTimeout)

	clientController := controllers.NewClientController(logger, clientService, registrationService, cfg.RedactInternalErrors)
	tripController := controllers.NewTripController(logger, tripService, cfg.RedactInternalErrors)

	return deliveryhttp.NewRouter(logger, clientController, tripController, cfg.CORSAllowedOrigins), nil
}
