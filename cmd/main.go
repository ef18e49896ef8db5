package main

import (
	"os"

	_ "cocktail_rig/docs"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
