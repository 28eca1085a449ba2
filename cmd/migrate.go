package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/adityarahman/celengan/internal/database"
	"github.com/adityarahman/celengan/internal/migration"
	"github.com/adityarahman/celengan/pkg/logger"
)

var migrateCmd = &cobra.Command{
	RunE:  runMigration,
	Use:   "migrate",
	Short: "bring the ledger store schema to the latest version",
}

func runMigration(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runner := migration.NewRunner(db.SQLx, migration.Revisions, logger.L())
	if err := runner.Run(cmd.Context()); err != nil {
		return err
	}

	version, err := runner.CurrentVersion(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("schema at version %d\n", version)
	return nil
}
