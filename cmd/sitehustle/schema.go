package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/schema"
)

var schemaPillar int

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print a pillar's structural JSON Schema",
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().IntVar(&schemaPillar, "pillar", 1, "Pillar id (1-6)")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(_ *cobra.Command, _ []string) error {
	js, err := schema.JSONSchema(schemaPillar)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
