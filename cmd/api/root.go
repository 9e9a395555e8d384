package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"travelagency/config"
	"travelagency/internal/repository/postgres"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "travelagency",
		Short:        "Travel agency registration API",
		Long:         `HTTP API for travel agency clients, the trip catalog and trip registrations, backed by PostgreSQL.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// bootstrap loads configuration, builds the logger and opens the database pool.
// The caller closes the returned *sql.DB.
func bootstrap(ctx context.Context) (*config.Config, *slog.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, logger, db, nil
}
