package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/breadbutter/matchd/internal/adapters/repository"
	"github.com/breadbutter/matchd/internal/config"
)

var seedFlag bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema, optionally seeding sample data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("database_url is required to migrate")
		}

		ctx := cmd.Context()
		store, err := repository.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting store: %w", err)
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
		fmt.Println("schema up to date")

		if seedFlag {
			if err := store.Seed(ctx); err != nil {
				return fmt.Errorf("seeding sample data: %w", err)
			}
			fmt.Println("sample data seeded")
		}

		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedFlag, "seed", false, "insert sample clients, talents, and gigs")
	rootCmd.AddCommand(migrateCmd)
}
