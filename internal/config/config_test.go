package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/taskboard.db")
	if cfg.Database.Path != "/tmp/taskboard.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.Server.Timeout.Std() != 10*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Server.Timeout.Std())
	}
	if cfg.UI.DefaultView != "table" || cfg.UI.DueSoonDays != 3 {
		t.Fatalf("unexpected ui defaults %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/taskboard.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.URL != defaults.Server.URL {
		t.Fatalf("expected default url, got %q", cfg.Server.URL)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "http://tasks.internal:8080"
timeout = "3s"

[ui]
default_view = "kanban"
theme = "dracula"

[logging]
level = "debug"
file = "/tmp/taskboard.log"

[notify]
enabled = true
`)

	cfg, err := Load(path, Default("/tmp/default.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.URL != "http://tasks.internal:8080" || cfg.Server.Timeout.Std() != 3*time.Second {
		t.Fatalf("unexpected server %+v", cfg.Server)
	}
	if cfg.UI.DefaultView != "kanban" || cfg.UI.Theme != "dracula" {
		t.Fatalf("unexpected ui %+v", cfg.UI)
	}
	// Unset keys keep their defaults.
	if cfg.UI.DueSoonDays != 3 || cfg.Database.Path != "/tmp/default.db" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	lvl, err := cfg.Logging.ParseLevel()
	if err != nil || lvl != log.DebugLevel {
		t.Fatalf("level = %v, %v", lvl, err)
	}
	if !cfg.Notify.Enabled {
		t.Fatal("expected notify enabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"view":     "[ui]\ndefault_view = \"calendar\"\n",
		"due":      "[ui]\ndue_soon_days = -1\n",
		"timeout":  "[server]\ntimeout = \"soon\"\n",
		"level":    "[logging]\nlevel = \"loud\"\n",
		"url":      "[server]\nurl = \"\"\n",
		"not toml": "this is = = not toml",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content), Default("/tmp/default.db")); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default("/tmp/rt.db")
	cfg.UI.Theme = "gruvbox"
	cfg.Server.Timeout = Duration(2 * time.Second)

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Load(path, Default("/tmp/other.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "config.toml")
	if err := EnsureConfigDir(target); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(target)); err != nil {
		t.Fatalf("expected dir to exist, stat error %v", err)
	}
}
