package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "renthub",
		Short: "RentHub administration tool",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		seedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := config.ConnectDatabase(cfg)
			if err != nil {
				return err
			}
			defer config.CloseDatabase()

			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Println("Migration completed.")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the default manager account and sample houses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := config.ConnectDatabase(cfg)
			if err != nil {
				return err
			}
			defer config.CloseDatabase()

			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			if err := config.SeedData(db); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			fmt.Println("Seeding completed.")
			return nil
		},
	}
}
