package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate [seconds-per-ounce]",
	Short: "Show or set how long a pump runs to dispense one ounce",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			if len(args) == 1 {
				v, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("parse seconds per ounce %q: %w", args[0], err)
				}
				if err := a.services.Calibration.Set(ctx, v); err != nil {
					return err
				}
			}
			v, err := a.services.Calibration.Get(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%g seconds per ounce\n", v)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
}
