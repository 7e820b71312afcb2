// Package config provides configuration loading and validation for the CLI
// and the API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the engine configuration, loadable from a JSON file. All
// fields are optional; missing values use defaults or come from flags
// and environment variables.
type Config struct {
	Port        int    `json:"port,omitempty"`         // API listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty means in-memory store
	Dev         bool   `json:"dev,omitempty"`          // Serve with the in-memory store

	// Persistence policy
	SaveAttempts  int `json:"save_attempts,omitempty"`   // Bounded retry attempts for saves
	SaveBackoffMS int `json:"save_backoff_ms,omitempty"` // Base backoff before the second attempt

	// Export
	ExportTimeoutSeconds int  `json:"export_timeout_seconds,omitempty"` // Headless Chrome render timeout
	Verbose              bool `json:"verbose,omitempty"`                // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SaveAttempts < 0 {
		return fmt.Errorf("config error: 'save_attempts' must be non-negative")
	}
	if c.SaveBackoffMS < 0 {
		return fmt.Errorf("config error: 'save_backoff_ms' must be non-negative")
	}
	if c.ExportTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'export_timeout_seconds' must be non-negative")
	}
	if !c.Dev && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required unless 'dev' is set")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. Bool fields are not merged; flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SaveAttempts == 0 {
		result.SaveAttempts = defaults.SaveAttempts
	}
	if result.SaveBackoffMS == 0 {
		result.SaveBackoffMS = defaults.SaveBackoffMS
	}
	if result.ExportTimeoutSeconds == 0 {
		result.ExportTimeoutSeconds = defaults.ExportTimeoutSeconds
	}

	return result
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Port:                 8080,
		SaveAttempts:         3,
		SaveBackoffMS:        200,
		ExportTimeoutSeconds: 30,
	}
}
