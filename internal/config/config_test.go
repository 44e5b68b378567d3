package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var envKeys = []string{
	"BREAKLIST_CONFIG", "PORT", "LOG_LEVEL", "STATE_BACKEND", "STATE_PATH", "STATE_DB_PATH",
	"STATE_HISTORY", "MAX_UPLOAD_MB", "DAY_START_MINUTE", "WINDOW_MINUTES", "SLOT_STEP_MINUTES",
	"METRICS_ENABLED", "BREAKLIST_SERVER_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.StateBackend != BackendFile || cfg.StatePath != "App_Data/breaklist.json" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if w := cfg.Window(); w.DayStart != 360 || w.Minutes != 1500 || w.SlotStep != 20 {
		t.Fatalf("window = %+v", w)
	}
	if cfg.MaxUploadBytes() != 10<<20 {
		t.Fatalf("max upload = %d", cfg.MaxUploadBytes())
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "breaklist.yaml")
	yml := "port: 9090\nstate_backend: sqlite\nstate_db_path: /tmp/x.db\nslot_step_minutes: 30\nmetrics_enabled: false\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BREAKLIST_CONFIG", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7070 {
		t.Fatalf("env should win over file, port = %d", cfg.Port)
	}
	if cfg.StateBackend != BackendSQLite || cfg.StateDBPath != "/tmp/x.db" || cfg.SlotStepMinutes != 30 || cfg.MetricsEnabled {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.StatePath != "App_Data/breaklist.json" {
		t.Fatalf("keys missing from the file keep defaults, got %q", cfg.StatePath)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port", map[string]string{"PORT": "70000"}, "PORT"},
		{"backend", map[string]string{"STATE_BACKEND": "redis"}, "STATE_BACKEND"},
		{"upload", map[string]string{"MAX_UPLOAD_MB": "0"}, "MAX_UPLOAD_MB"},
		{"day start", map[string]string{"DAY_START_MINUTE": "1440"}, "day start"},
		{"slot step", map[string]string{"SLOT_STEP_MINUTES": "7"}, "slot step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BREAKLIST_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
