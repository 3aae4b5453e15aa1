// Package config provides configuration management for the shipqueue
// CLI. Values are merged from defaults, an optional shipqueue.yaml,
// SHIPQUEUE_* environment variables, and command-line flags, in that
// order of precedence (lowest first).
package config

import (
	"fmt"
	"os"
)

// Defaults for config values not set anywhere else.
const (
	DefaultOutputFile = "x4_shipqueue.xlsx"
	DefaultLanguageID = 44
	DefaultStateFile  = ".shipqueue/state.db"
)

// Config holds all CLI configuration options.
type Config struct {
	DataRoot     string `koanf:"data_root"`
	OutputFile   string `koanf:"output_file"`
	LanguageID   int    `koanf:"language"`
	StatePath    string `koanf:"state_path"`
	AllEquipment bool   `koanf:"all_equipment"`
	Verbose      bool   `koanf:"verbose"`
}

// Validate checks if the configuration is valid. Directory existence is
// checked separately so help output works without a data root.
func (c *Config) Validate() error {
	if c.LanguageID <= 0 {
		return fmt.Errorf("language must be a positive page id, got %d", c.LanguageID)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file is required")
	}
	return nil
}

// ValidateDataRoot checks that the configured data root exists.
func (c *Config) ValidateDataRoot() error {
	if c.DataRoot == "" {
		return fmt.Errorf("data root is required\nHint: pass --data-root or set data_root in shipqueue.yaml")
	}
	info, err := os.Stat(c.DataRoot)
	if os.IsNotExist(err) {
		return fmt.Errorf("data root does not exist: %s", c.DataRoot)
	}
	if err != nil {
		return fmt.Errorf("data root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data root is not a directory: %s", c.DataRoot)
	}
	return nil
}
