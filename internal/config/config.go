package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

// State backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	// State storage
	StateBackend string `yaml:"state_backend"`
	StatePath    string `yaml:"state_path"`
	StateDBPath  string `yaml:"state_db_path"`
	StateHistory int    `yaml:"state_history"`
	// Uploads
	MaxUploadMB int `yaml:"max_upload_mb"`
	// Window for fresh schedules
	DayStartMinute  int `yaml:"day_start_minute"`
	WindowMinutes   int `yaml:"window_minutes"`
	SlotStepMinutes int `yaml:"slot_step_minutes"`
	// Observability
	MetricsEnabled bool `yaml:"metrics_enabled"`
	// MCP adapter
	ServerURL string `yaml:"server_url"`
}

func defaults() *Config {
	return &Config{
		Port:            8080,
		LogLevel:        "info",
		StateBackend:    BackendFile,
		StatePath:       "App_Data/breaklist.json",
		StateDBPath:     "App_Data/breaklist.db",
		StateHistory:    20,
		MaxUploadMB:     10,
		DayStartMinute:  timewindow.DefaultDayStart,
		WindowMinutes:   timewindow.DefaultMinutes,
		SlotStepMinutes: timewindow.DefaultSlotStep,
		MetricsEnabled:  true,
		ServerURL:       "http://localhost:8080",
	}
}

// Load builds the config from defaults, then the YAML file named by
// BREAKLIST_CONFIG (if set), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("BREAKLIST_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envInt("PORT", cfg.Port)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.StateBackend = envStr("STATE_BACKEND", cfg.StateBackend)
	cfg.StatePath = envStr("STATE_PATH", cfg.StatePath)
	cfg.StateDBPath = envStr("STATE_DB_PATH", cfg.StateDBPath)
	cfg.StateHistory = envInt("STATE_HISTORY", cfg.StateHistory)
	cfg.MaxUploadMB = envInt("MAX_UPLOAD_MB", cfg.MaxUploadMB)
	cfg.DayStartMinute = envInt("DAY_START_MINUTE", cfg.DayStartMinute)
	cfg.WindowMinutes = envInt("WINDOW_MINUTES", cfg.WindowMinutes)
	cfg.SlotStepMinutes = envInt("SLOT_STEP_MINUTES", cfg.SlotStepMinutes)
	cfg.MetricsEnabled = envBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.ServerURL = envStr("BREAKLIST_SERVER_URL", cfg.ServerURL)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Window is the window given to schedules created from scratch.
func (c *Config) Window() timewindow.Window {
	return timewindow.Window{DayStart: c.DayStartMinute, Minutes: c.WindowMinutes, SlotStep: c.SlotStepMinutes}
}

// MaxUploadBytes is the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.StateBackend {
	case BackendFile:
		if c.StatePath == "" {
			return fmt.Errorf("STATE_PATH must not be empty")
		}
	case BackendSQLite:
		if c.StateDBPath == "" {
			return fmt.Errorf("STATE_DB_PATH must not be empty")
		}
	default:
		return fmt.Errorf("STATE_BACKEND must be %q or %q, got %q", BackendFile, BackendSQLite, c.StateBackend)
	}
	if c.StateHistory < 0 {
		return fmt.Errorf("STATE_HISTORY must not be negative, got %d", c.StateHistory)
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if err := c.Window().Validate(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
