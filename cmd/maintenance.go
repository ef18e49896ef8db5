package main

import (
	"context"

	"github.com/spf13/cobra"

	"cocktail_rig/internal/models"
)

var (
	primeSeconds float64
	cleanSeconds float64
)

var primeCmd = &cobra.Command{
	Use:   "prime",
	Short: "Run every pump forward to fill the lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd, func(ctx context.Context, a *app) (models.MaintenanceReport, error) {
			return a.services.Bar.Prime(ctx, primeSeconds)
		})
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run every pump in reverse to empty the lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd, func(ctx context.Context, a *app) (models.MaintenanceReport, error) {
			return a.services.Bar.Clean(ctx, cleanSeconds)
		})
	},
}

func init() {
	primeCmd.Flags().Float64Var(&primeSeconds, "seconds", 0, "seconds per pump (0 uses maintenance.prime_seconds)")
	cleanCmd.Flags().Float64Var(&cleanSeconds, "seconds", 0, "seconds per pump (0 uses maintenance.clean_seconds)")
	rootCmd.AddCommand(primeCmd, cleanCmd)
}

func runMaintenance(cmd *cobra.Command, run func(ctx context.Context, a *app) (models.MaintenanceReport, error)) error {
	return withApp(func(ctx context.Context, a *app) error {
		rep, err := run(ctx, a)
		if perr := printJSON(cmd.OutOrStdout(), rep); perr != nil {
			return perr
		}
		return err
	})
}
