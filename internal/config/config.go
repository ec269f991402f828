// Package config loads the designer's TOML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"reportdesigner/internal/history"
	"reportdesigner/internal/logging"
)

// Config is the decoded contents of designer.toml.
type Config struct {
	History  HistoryConfig  `toml:"history"`
	Sessions SessionsConfig `toml:"sessions"`
	Log      LogConfig      `toml:"log"`
	MCP      MCPConfig      `toml:"mcp"`
}

type HistoryConfig struct {
	// MaxEntries caps the undo stack of every open report.
	MaxEntries int `toml:"max_entries"`
}

type SessionsConfig struct {
	// IdleTTL is how long a report may go untouched before it is closed.
	// Zero disables eviction.
	IdleTTL time.Duration `toml:"idle_ttl"`
	// ReapSchedule is a cron spec, e.g. "@every 10m" or "*/5 * * * *".
	ReapSchedule string `toml:"reap_schedule"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type MCPConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		History: HistoryConfig{MaxEntries: history.DefaultMaxEntries},
		Sessions: SessionsConfig{
			IdleTTL:      2 * time.Hour,
			ReapSchedule: "@every 10m",
		},
		Log: LogConfig{Level: "info"},
		MCP: MCPConfig{Name: "report-designer-mcp", Version: "1.0.0"},
	}
}

// DefaultPath returns ~/.config/reportdesigner/designer.toml.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "reportdesigner", "designer.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and syntax.
func (c *Config) Validate() error {
	var errs []error
	if c.History.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries))
	}
	if c.Sessions.IdleTTL < 0 {
		errs = append(errs, fmt.Errorf("sessions.idle_ttl must not be negative, got %s", c.Sessions.IdleTTL))
	}
	if c.Sessions.ReapSchedule != "" {
		if _, err := cron.ParseStandard(c.Sessions.ReapSchedule); err != nil {
			errs = append(errs, fmt.Errorf("sessions.reap_schedule: %w", err))
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}
