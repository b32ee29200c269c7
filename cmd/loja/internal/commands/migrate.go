package commands

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/db/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := db.Connect(cmd.Context(), cfg.DB)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer closeDB(conn)

			applied, err := db.NewMigrator(conn, migrations.FS).Up(cmd.Context())
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations to apply.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s).\n", len(applied))
			return nil
		},
	}
}

func newShowMigrationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "showmigrations",
		Short: "List migrations and whether they have been applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := db.Connect(cmd.Context(), cfg.DB)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer closeDB(conn)

			statuses, err := db.NewMigrator(conn, migrations.FS).Status(cmd.Context())
			if err != nil {
				return err
			}

			for _, status := range statuses {
				marker := " "
				if status.Applied {
					marker = "X"
				}
				fmt.Fprintf(cmd.OutOrStdout(), " [%s] %s\n", marker, status.Name)
			}
			return nil
		},
	}
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		slog.Error("Failed to close the database.", "reason", err)
	}
}
