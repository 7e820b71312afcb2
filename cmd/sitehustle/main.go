// Package main provides the entry point for the SiteHustle worksheet engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sitehustle",
	Short: "SiteHustle worksheet engine",
	Long:  "SiteHustle validates pillar worksheets, gates section progression on validated data plus exported PDFs, and serves the REST API backing the course dashboard.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
