package cmd

import (
	"fmt"

	"kb-admin/core/config"
	"kb-admin/core/database"
	"kb-admin/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd applies the embedded schema migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the knowledge-base tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		version, err := database.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}
		l.Info("Database migrated", zap.String("driver", cfg.Database.Driver), zap.Int64("version", version))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
