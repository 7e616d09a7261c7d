package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/postgres"
)

// NewMigrateCmd creates the migrate command with up, down, and status
// subcommands.
func NewMigrateCmd() *cobra.Command {
	var migrationsPath string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage report-store schema migrations",
	}
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory (default: database.migration_path from config)")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dir := resolveMigrationsPath(cliCtx, migrationsPath)

			conn, err := postgres.NewConnection(cliCtx.Config.Database, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := conn.RunMigrations(dir); err != nil {
				return err
			}
			PrintSuccess(cmd, "migrations applied")
			return nil
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dir := resolveMigrationsPath(cliCtx, migrationsPath)
			dbURL := postgres.BuildDSN(cliCtx.Config.Database)

			if err := postgres.RollbackMigration(dbURL, dir, steps); err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("rolled back %d migration(s)", steps))
			return nil
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dir := resolveMigrationsPath(cliCtx, migrationsPath)
			dbURL := postgres.BuildDSN(cliCtx.Config.Database)

			version, dirty, err := postgres.MigrationStatus(dbURL, dir)
			if err != nil {
				return err
			}
			if version == 0 {
				return PrintResult(cmd, "no migrations applied")
			}
			return PrintResult(cmd, fmt.Sprintf("version=%d dirty=%t", version, dirty))
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, statusCmd)
	return migrateCmd
}

func resolveMigrationsPath(cliCtx *CLIContext, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cliCtx.Config.Database.MigrationPath != "" {
		return cliCtx.Config.Database.MigrationPath
	}
	return "migrations"
}
