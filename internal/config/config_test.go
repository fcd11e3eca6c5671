package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
	if cfg.Rebrickable.RateLimit != 1 {
		t.Errorf("RateLimit = %d, want 1", cfg.Rebrickable.RateLimit)
	}
	if cfg.BaseDir == "" {
		t.Error("BaseDir should not be empty")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRIXIE_HOME", t.TempDir())
	t.Setenv("REBRICKABLE_API_KEY", "test-key-123")
	t.Setenv("BRIXIE_PAGE_SIZE", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Rebrickable.APIKey != "test-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.Rebrickable.APIKey, "test-key-123")
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
}

func TestLoad_InvalidPageSizeIgnored(t *testing.T) {
	t.Setenv("BRIXIE_HOME", t.TempDir())
	t.Setenv("BRIXIE_PAGE_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want default %d", cfg.PageSize, DefaultPageSize)
	}
}

func TestLoad_CreatesDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "brixie-home")
	t.Setenv("BRIXIE_HOME", base)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, dir := range []string{cfg.BaseDir, LogDir(cfg)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/tmp/brixie-test"}
	paths := GetPaths(cfg)

	if paths.Database != filepath.Join("/tmp/brixie-test", "brixie.db") {
		t.Errorf("Database path = %s", paths.Database)
	}
	if paths.Logs != filepath.Join("/tmp/brixie-test", "logs") {
		t.Errorf("Logs path = %s", paths.Logs)
	}
}
