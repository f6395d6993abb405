// Package main provides the entry point for the Aetherium content engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aetherium",
	Short: "Aetherium content engine",
	Long:  "Aetherium turns an article URL into ready-to-publish social posts for Instagram, Twitter/X, and LinkedIn, personalized by a stored persona and past successful posts.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
