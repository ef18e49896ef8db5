package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cocktail_rig/internal/service"
)

var pourDouble bool

var pourCmd = &cobra.Command{
	Use:   "pour [cocktail]",
	Short: "Pour a cocktail and wait for it to finish",
	Long: `Pour a cocktail by safe name ("moscow_mule") or display name.
Without an argument the selected cocktail is poured. Ctrl-C stops after the
ingredient that is pouring.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := service.PourParams{Mode: service.ModeSingle}
		if len(args) == 1 {
			p.Cocktail = args[0]
		}
		if pourDouble {
			p.Mode = service.ModeDouble
		}
		return withApp(func(ctx context.Context, a *app) error {
			rep, err := a.services.Bar.Pour(ctx, p)
			if perr := printJSON(cmd.OutOrStdout(), rep); perr != nil {
				return perr
			}
			return err
		})
	},
}

func init() {
	pourCmd.Flags().BoolVar(&pourDouble, "double", false, "pour a double")
	rootCmd.AddCommand(pourCmd)
}

// withApp runs fn with a context canceled on SIGINT/SIGTERM and closes the
// app afterwards.
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx, a)
	if cerr := a.Close(); cerr != nil && runErr == nil {
		return cerr
	}
	return runErr
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
