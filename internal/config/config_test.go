package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Forecast.TimelineDays != 90 {
		t.Errorf("TimelineDays = %d, want 90", cfg.Forecast.TimelineDays)
	}
	if cfg.Forecast.MaxMonths != 360 {
		t.Errorf("MaxMonths = %d, want 360", cfg.Forecast.MaxMonths)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.Forecast.TimelineDays != 90 {
		t.Errorf("missing file should fall back to defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("listen_addr: \":9090\"\nlog_level: debug\nforecast:\n  timeline_days: 30\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Forecast.TimelineDays != 30 {
		t.Errorf("TimelineDays = %d, want 30", cfg.Forecast.TimelineDays)
	}
	// Unset keys still get defaults.
	if cfg.Forecast.MaxMonths != 360 {
		t.Errorf("MaxMonths = %d, want 360", cfg.Forecast.MaxMonths)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("FINCAST_LISTEN_ADDR", ":7070")
	t.Setenv("FINCAST_TIMELINE_DAYS", "14")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want :7070", cfg.ListenAddr)
	}
	if cfg.Forecast.TimelineDays != 14 {
		t.Errorf("TimelineDays = %d, want 14", cfg.Forecast.TimelineDays)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("forecast:\n  max_months: -1\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative max_months")
	}

	if err := os.WriteFile(path, []byte("not: [valid yaml\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
