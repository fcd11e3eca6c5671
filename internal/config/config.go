// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all Brixie data (~/.brixie)
	BaseDir string

	// Rebrickable API settings
	Rebrickable RebrickableConfig

	// Catalog paging
	PageSize int
}

// RebrickableConfig holds Rebrickable API settings.
type RebrickableConfig struct {
	APIKey    string
	RateLimit int // requests per second
}

// Load reads configuration from a .env file (if present) and environment
// variables. Environment variables win over .env entries.
func Load() (*Config, error) {
	// Best-effort: a missing .env is the normal case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if key := os.Getenv("REBRICKABLE_API_KEY"); key != "" {
		cfg.Rebrickable.APIKey = key
	}

	if raw := os.Getenv("BRIXIE_PAGE_SIZE"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			cfg.PageSize = size
		}
	}

	if dir := os.Getenv("BRIXIE_HOME"); dir != "" {
		cfg.BaseDir = dir
	}

	// Ensure directories exist
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		LogDir(cfg),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
