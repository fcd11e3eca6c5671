package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Logs     string // Log directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "brixie.db"),
		Logs:     LogDir(cfg),
	}
}

// LogDir returns the log directory for a config.
func LogDir(cfg *Config) string {
	return filepath.Join(cfg.BaseDir, "logs")
}

// DefaultBaseDir returns the default base directory (~/.brixie).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brixie"
	}
	return filepath.Join(home, ".brixie")
}
