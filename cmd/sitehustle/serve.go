package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/config"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/db"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/export"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/server"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/worksheet"
)

var (
	servePort   int
	serveConfig string
	serveDev    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes worksheet, validation, progression and PDF export endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "Serve with the in-memory store (no database)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if serveConfig != "" {
		loaded, err := config.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if servePort != 0 {
		cfg.Port = servePort
	}
	if url := os.Getenv("DATABASE_URL"); url != "" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = url
	}
	if serveDev {
		cfg.Dev = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var store worksheet.Store
	if cfg.Dev && cfg.DatabaseURL == "" {
		log.Println("No database configured; using in-memory store")
		store = worksheet.NewMemStore()
	} else {
		pg, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pg.Close()
		store = pg
	}

	// Bounded save retries compose around the raw store.
	store = &worksheet.RetryStore{
		Store:       store,
		MaxAttempts: cfg.SaveAttempts,
		BaseDelay:   time.Duration(cfg.SaveBackoffMS) * time.Millisecond,
	}

	exporter := &export.ChromeExporter{
		Timeout: time.Duration(cfg.ExportTimeoutSeconds) * time.Second,
		Verbose: cfg.Verbose,
	}

	srv, err := server.New(server.Config{Port: cfg.Port}, store, exporter)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
