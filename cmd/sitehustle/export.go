package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/export"
)

var (
	exportPillar  int
	exportSection string
	exportFile    string
	exportOut     string
	exportTimeout int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a worksheet section as a PDF",
	Long: `Export validates one section of a worksheet file and prints it to PDF
with a headless Chrome. The section must be complete; incomplete sections
are rejected with a field-by-field report.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportPillar, "pillar", 1, "Pillar id (1-6)")
	exportCmd.Flags().StringVar(&exportSection, "section", "", "Section name (required)")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Path to worksheet JSON file (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "worksheet.pdf", "Output PDF path")
	exportCmd.Flags().IntVar(&exportTimeout, "timeout", 30, "Render timeout in seconds")
	_ = exportCmd.MarkFlagRequired("section")
	_ = exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(exportFile)
	if err != nil {
		return fmt.Errorf("failed to read worksheet file: %w", err)
	}

	var wf worksheetFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return fmt.Errorf("failed to parse worksheet JSON: %w", err)
	}

	exporter := &export.ChromeExporter{Timeout: time.Duration(exportTimeout) * time.Second}
	pdf, err := exporter.ExportSection(context.Background(), exportPillar, exportSection, wf.Sections[exportSection])
	if err != nil {
		return err
	}

	if err := os.WriteFile(exportOut, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", exportOut, len(pdf))
	return nil
}
