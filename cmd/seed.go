package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/adityarahman/celengan/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate first-run defaults",
	Long:  `Creates the base currency, starter categories, a default cash account and default settings. Safe to run more than once.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initDependencies()
		if err != nil {
			log.Fatalf("failed to initialize: %v", err)
		}
		defer deps.DB.Close()

		seeder := seed.NewSeeder(
			deps.Settings,
			deps.Currencies,
			deps.Categories,
			deps.Accounts,
			deps.Config.Ledger.DefaultBaseCurrency,
			deps.Logger,
		)
		if err := seeder.Run(); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("defaults in place")
	},
}
