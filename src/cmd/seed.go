package cmd

import (
	"fmt"
	"os"

	"budget-planner/src/budget"
	"budget-planner/src/config"
	"budget-planner/src/db"
	"budget-planner/src/db/seed"
	store "budget-planner/src/db/sql"

	"github.com/spf13/cobra"
)

type seedOptions struct {
	username string
	month    int
	year     int
	file     string
}

func newSeedCommand() *cobra.Command {
	opts := seedOptions{}
	c := &cobra.Command{
		Use:   "seed",
		Short: "Replace one month of a user's data with the demo dataset",
		Long: "Deletes the user's transactions and budget configs for the given month\n" +
			"and loads the demo dataset (or a YAML file in the same shape) in their place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := budget.Period{Month: opts.month, Year: opts.year}
			if err := p.Validate(); err != nil {
				return err
			}
			dataset, err := loadDataset(opts.file)
			if err != nil {
				return err
			}

			url, err := config.LoadDatabaseURL()
			if err != nil {
				return err
			}
			pool, err := db.Connect(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("DB connection failed: %w", err)
			}
			defer pool.Close()

			s := store.NewStore(pool)
			user, err := s.GetUserByUsername(cmd.Context(), opts.username)
			if err != nil {
				return fmt.Errorf("look up %q: %w", opts.username, err)
			}

			nc, nt, err := seed.Run(cmd.Context(), s, user.ID, p, dataset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d budget configs and %d transactions for %s in %02d/%d\n",
				nc, nt, user.Username, p.Month, p.Year)
			return nil
		},
	}
	c.Flags().StringVar(&opts.username, "user", "", "username to seed (required)")
	c.Flags().IntVar(&opts.month, "month", 3, "month to seed")
	c.Flags().IntVar(&opts.year, "year", 2025, "year to seed")
	c.Flags().StringVar(&opts.file, "file", "", "YAML dataset to load instead of the built-in one")
	c.MarkFlagRequired("user")
	return c
}

func loadDataset(path string) (seed.Dataset, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return seed.Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return seed.Parse(data)
}
