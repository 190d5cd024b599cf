package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/database/postgres"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the run store schema",
		Long:  "Applies or rolls back the PostgreSQL migrations of the run store at database.dsn.",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *postgres.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *postgres.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *postgres.Migrator) error {
				return printVersion(cmd, m)
			})
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(m *postgres.Migrator) error) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	dsn := cliCtx.Config.Database.DSN
	if dsn == "" {
		return errors.New(errors.ErrCodeConfig, "database.dsn is not set")
	}
	m, err := postgres.NewMigrator(dsn, cliCtx.Logger.Named("migrate"))
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

// schemaVersion is the printed result of the migrate commands.
type schemaVersion struct {
	postgres.MigrationVersion
}

func (v schemaVersion) String() string {
	if v.Dirty {
		return fmt.Sprintf("schema version %d (dirty)\n", v.Version)
	}
	return fmt.Sprintf("schema version %d\n", v.Version)
}

func printVersion(cmd *cobra.Command, m *postgres.Migrator) error {
	v, err := m.Version()
	if err != nil {
		return err
	}
	return PrintResult(cmd, schemaVersion{v})
}

//Personal.AI order the ending
