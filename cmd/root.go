package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/configs"
)

var rootCmd = &cobra.Command{
	Use:   "foodtruck-api",
	Short: "Food truck ordering marketplace API",
	// bare invocation serves
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, recomputeCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config, builds the logger and opens a migrated database.
func bootstrap() (*configs.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log := configs.NewLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := configs.OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
