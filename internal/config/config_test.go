package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != DefaultModel {
		t.Fatalf("unexpected model: %q", cfg.Model)
	}

	if cfg.BlockSize != DefaultBlockSize {
		t.Fatalf("unexpected block size: %d", cfg.BlockSize)
	}

	if cfg.DBPath == "" {
		t.Fatalf("expected a resolved DB path")
	}
}

func TestLoadReadsTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "model = \"gpt-4.1\"\nnch = 1500\ntemperature = 0.7\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != "gpt-4.1" {
		t.Fatalf("unexpected model: %q", cfg.Model)
	}

	if cfg.BlockSize != 1500 {
		t.Fatalf("unexpected block size: %d", cfg.BlockSize)
	}

	if cfg.Temperature != 0.7 {
		t.Fatalf("unexpected temperature: %g", cfg.Temperature)
	}

	if cfg.SummaryBlock != DefaultSummaryBlock {
		t.Fatalf("expected untouched defaults to remain, got %d", cfg.SummaryBlock)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("model = \"from-file\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("TEXTDIGEST_MODEL", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != "from-env" {
		t.Fatalf("expected environment to win, got %q", cfg.Model)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("model = [broken"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config file")
	}
}
