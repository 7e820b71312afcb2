package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/validation"
)

var (
	validatePillar int
	validateFile   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a worksheet JSON file against a pillar schema",
	Long: `Validate reads a worksheet file ({"sections": {...}}) and reports
every incomplete field, grouped by section-qualified path.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().IntVar(&validatePillar, "pillar", 1, "Pillar id (1-6)")
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to worksheet JSON file (required)")
	_ = validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}

type worksheetFile struct {
	Sections map[string]map[string]any `json:"sections"`
}

func runValidate(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateFile)
	if err != nil {
		return fmt.Errorf("failed to read worksheet file: %w", err)
	}

	var wf worksheetFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return fmt.Errorf("failed to parse worksheet JSON: %w", err)
	}

	result, err := validation.Validate(validatePillar, wf.Sections)
	if err != nil {
		return err
	}

	if result.Success {
		fmt.Printf("Pillar %d worksheet is complete.\n", validatePillar)
		return nil
	}

	paths := make([]string, 0, len(result.Errors))
	for path := range result.Errors {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fmt.Printf("Pillar %d worksheet has %d incomplete fields:\n", validatePillar, len(paths))
	for _, path := range paths {
		for _, msg := range result.Errors[path] {
			fmt.Printf("  %-45s %s\n", path, msg)
		}
	}
	os.Exit(1)
	return nil
}
