package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"reportdesigner/internal/history"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100, cfg.History.MaxEntries)
	assert.Equal(t, 2*time.Hour, cfg.Sessions.IdleTTL)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designer.toml")
	writeFile(t, path, `
[history]
max_entries = 25

[sessions]
idle_ttl = "30m"
reap_schedule = "*/5 * * * *"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.History.MaxEntries)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
	assert.Equal(t, "*/5 * * * *", cfg.Sessions.ReapSchedule)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched section keeps its defaults
	assert.Equal(t, "report-designer-mcp", cfg.MCP.Name)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero depth", "[history]\nmax_entries = 0\n"},
		{"bad level", "[log]\nlevel = \"chatty\"\n"},
		{"bad cron", "[sessions]\nreap_schedule = \"every tuesday\"\n"},
		{"unknown key", "[history]\nmax_entrys = 5\n"},
		{"broken toml", "[history\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "designer.toml")
			writeFile(t, path, tt.body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designer.toml")
	writeFile(t, path, "[history]\nmax_entries = 10\n")

	got := make(chan *Config, 8)
	w, err := Watch(context.Background(), path, func(cfg *Config) { got <- cfg })
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "[history]\nmax_entries = 42\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.History.MaxEntries == 42 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatch_IgnoresInvalidEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "designer.toml")
	writeFile(t, path, "[history]\nmax_entries = 10\n")

	got := make(chan *Config, 8)
	w, err := Watch(context.Background(), path, func(cfg *Config) { got <- cfg })
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "[history]\nmax_entries = -1\n")
	// a sibling file must not trigger a reload either
	writeFile(t, filepath.Join(dir, "other.toml"), "[history]\nmax_entries = 7\n")

	// Truncate-then-write can surface an empty file, which loads as the
	// defaults. Anything else means a bad edit or the sibling got through.
	timeout := time.After(300 * time.Millisecond)
	for {
		select {
		case cfg := <-got:
			if cfg.History.MaxEntries != history.DefaultMaxEntries {
				t.Fatalf("unexpected reload: %+v", cfg)
			}
		case <-timeout:
			return
		}
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designer.toml")
	w, err := Watch(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
