package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8087" {
		t.Fatalf("port = %s, want 8087", cfg.Port)
	}
	if cfg.Backend != "json" {
		t.Fatalf("backend = %s, want json", cfg.Backend)
	}
	if !strings.HasSuffix(cfg.DataFile, "budget_data.json") {
		t.Fatalf("data file = %s", cfg.DataFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")

	cfg := Load()
	if cfg.Port != "9000" || cfg.Backend != "sqlite" || cfg.SQLiteDBPath != "/tmp/test.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{Port: "abc", Backend: "redis", ExportDir: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"invalid port", "invalid data backend", "export directory"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := Load()
	cfg.Port = "70000"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for out-of-range port")
	}
}
