package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	config "task-service.com/task-service/internal/configs"
	"task-service.com/task-service/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tasks table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		cfg.Database.AutoMigrate = false
		db, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}

		log.Printf("tasks table migrated (%s)", cfg.Database.DriverName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
