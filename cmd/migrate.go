package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			if err := database.Migrate(config.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "AutoMigrate successful")
			return nil
		},
	}
}
