package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"travelagency/internal/repository/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			provider, err := postgres.NewMigrator(db)
			if err != nil {
				return err
			}
			results, err := provider.Up(cmd.Context())
			if err != nil {
				return fmt.Errorf("goose up: %w", err)
			}
			for _, r := range results {
				logger.Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
			}
			if len(results) == 0 {
				logger.Info("no pending migrations")
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the state of every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			provider, err := postgres.NewMigrator(db)
			if err != nil {
				return err
			}
			statuses, err := provider.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("goose status: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
			for _, s := range statuses {
				applied := "-"
				if !s.AppliedAt.IsZero() {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
			}
			return tw.Flush()
		},
	})
	return cmd
}
