package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "task-manager.com/task-manager/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the sqlite task schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if cfg.DatabaseDriver != config.DriverSQLite {
			log.Info("nothing to migrate", zap.String("driver", cfg.DatabaseDriver))
			return nil
		}

		db, err := config.NewSQLite(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := config.Migrate(db); err != nil {
			return err
		}

		log.Info("schema migrated", zap.String("dsn", cfg.DatabaseDSN))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
