// Package cmd wires the command line: serving the API, running migrations
// and loading demo data.
package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "budget-planner",
		Short:         "Monthly budget tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand())
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}
