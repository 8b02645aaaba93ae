// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"baticost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// CatalogPath points to an HCL catalog file; empty means the builtin
	// catalog
	CatalogPath string `json:"catalog_path,omitempty"`

	// Estimate contains estimate defaults
	Estimate EstimateConfig `json:"estimate"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EstimateConfig contains defaults applied by outer surfaces when the caller
// omits a field; the engine itself never defaults.
type EstimateConfig struct {
	// DefaultRegion is the region used when the caller omits one
	DefaultRegion string `json:"default_region"`

	// DefaultFinishLevel is the finish level used when the caller omits one
	DefaultFinishLevel string `json:"default_finish_level"`

	// DefaultPrecision is the estimation precision used when omitted
	DefaultPrecision string `json:"default_precision"`

	// OutputFormat is the default CLI output format
	OutputFormat string `json:"output_format"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds response writes
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Estimate: EstimateConfig{
			DefaultRegion:      "default",
			DefaultFinishLevel: "standard",
			DefaultPrecision:   "quick",
			OutputFormat:       "cli",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
