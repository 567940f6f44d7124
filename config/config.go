// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all settings for a collection run.
type Config struct {
	// APIKeyFile is the path to the file holding the YouTube Data API key
	// (default: "api_key.txt").
	APIKeyFile string `json:"api_key_file"`
	// APIKey overrides APIKeyFile when set. It can only come from the
	// environment; keys are never stored in the config file.
	APIKey string `json:"-"`

	// OutputDir is the directory CSV tables are written into.
	OutputDir string `json:"output_dir"`

	// Workers bounds how many videos have their comments fetched
	// concurrently. 1 fetches strictly one video at a time.
	Workers int `json:"workers"`
	// RequestsPerSecond paces YouTube Data API calls.
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		APIKeyFile:        "api_key.txt",
		OutputDir:         ".",
		Workers:           1,
		RequestsPerSecond: 8,
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytcomments.json in the current
// directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytcomments.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytcomments", "ytcomments.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTCOMMENTS_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTCOMMENTS_API_KEY_FILE"); v != "" {
		c.APIKeyFile = v
	}
	if v := os.Getenv("YTCOMMENTS_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("YTCOMMENTS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv("YTCOMMENTS_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerSecond = f
		}
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.APIKey == "" && c.APIKeyFile == "" {
		return fmt.Errorf("api_key_file must be set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	return nil
}

// ReadAPIKey returns the API key, preferring the environment override,
// otherwise reading and trimming APIKeyFile. A missing or unreadable key
// file is a credential error and surfaces before any remote call is made.
func (c *Config) ReadAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}

	data, err := os.ReadFile(c.APIKeyFile)
	if err != nil {
		return "", fmt.Errorf("read api key file: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("api key file %s is empty", c.APIKeyFile)
	}
	return key, nil
}
