package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bigbadbobbo/foodtruck-api/services"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild every rating average and order cost from stored rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		if err := services.NewRollup(db, log).RecomputeAll(cmd.Context()); err != nil {
			return err
		}
		log.Info("aggregates recomputed")
		return nil
	},
}
