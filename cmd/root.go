package main

import (
	"github.com/spf13/cobra"
)

// configPath is the --config flag. Empty searches configs/config.yml.
var configPath string

// rootCmd serves the HTTP API when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "cocktail-rig",
	Short: "cocktail-rig pours cocktails on a pump rig",
	Long: `cocktail-rig drives a rig of peristaltic pumps, one ingredient per pump.

Without a subcommand it serves the HTTP API. The pour, prime, clean and
calibrate commands run against the same database and driver directly.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default configs/config.yml)")
}
