package cmd

import (
	"fmt"

	"budget-planner/src/config"
	"budget-planner/src/db"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	c.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := config.LoadDatabaseURL()
			if err != nil {
				return err
			}
			if err := db.MigrateUp(url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := config.LoadDatabaseURL()
			if err != nil {
				return err
			}
			if err := db.MigrateDown(url, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	c.AddCommand(down)

	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := config.LoadDatabaseURL()
			if err != nil {
				return err
			}
			v, dirty, err := db.MigrationVersion(url)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
			return nil
		},
	})
	return c
}
