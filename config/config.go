// Package config loads user configuration for the harvester from
// ~/.newsharvest/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StorageConfig holds run-history storage settings.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// FileConfig represents the structure of ~/.newsharvest/config.yaml.
// Zero values mean "use the built-in default" for every field.
type FileConfig struct {
	// Minimum delay between requests, as a Go duration string ("2s")
	Delay string `yaml:"delay"`
	// User-Agent header for page fetches
	UserAgent string `yaml:"user_agent"`
	// Maximum articles kept per site
	MaxArticles int `yaml:"max_articles"`
	// Maximum sites harvested in parallel
	Concurrency int `yaml:"concurrency"`
	// Directory report files are written under
	OutputDir string `yaml:"output_dir"`
	// Path to a YAML site-catalog override file
	SitesFile string        `yaml:"sites_file"`
	Storage   StorageConfig `yaml:"storage"`
}

// LoadConfigFile loads configuration from ~/.newsharvest/config.yaml.
// Returns nil if the file doesn't exist (not an error). Returns an error
// if the file exists but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".newsharvest", "config.yaml")

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	// Read file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
