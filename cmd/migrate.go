package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bigbadbobbo/foodtruck-api/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and seed the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		if err := configs.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
		log.WithField("driver", cfg.DBDriver).Info("database migrated")
		return nil
	},
}
