package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	UI       UIConfig       `toml:"ui"`
	Listen   ListenConfig   `toml:"listen"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Notify   NotifyConfig   `toml:"notify"`
}

// ServerConfig is where the board finds the task service
type ServerConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

type UIConfig struct {
	DefaultView string `toml:"default_view"` // table | kanban
	Theme       string `toml:"theme"`
	DueSoonDays int    `toml:"due_soon_days"`
}

// ListenConfig is the address `taskboard serve` binds
type ListenConfig struct {
	Addr string `toml:"addr"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

// Duration is a time.Duration written as a Go duration string ("10s")
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultPath returns ~/.config/taskboard/config.toml, honouring XDG_CONFIG_HOME
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "taskboard", "config.toml")
}

func Default(dbPath string) Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:5000",
			Timeout: Duration(10 * time.Second),
		},
		UI: UIConfig{
			DefaultView: "table",
			Theme:       "nord",
			DueSoonDays: 3,
		},
		Listen: ListenConfig{
			Addr: "127.0.0.1:5000",
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Notify: NotifyConfig{
			Enabled: false,
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return errors.New("server.url is required")
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must be >= 0, got %s", c.Server.Timeout.Std())
	}

	switch strings.TrimSpace(strings.ToLower(c.UI.DefaultView)) {
	case "", "table", "list", "kanban", "board":
	default:
		return fmt.Errorf("invalid ui.default_view: %q", c.UI.DefaultView)
	}
	if c.UI.DueSoonDays < 0 {
		return fmt.Errorf("ui.due_soon_days must be >= 0, got %d", c.UI.DueSoonDays)
	}

	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if strings.TrimSpace(c.Listen.Addr) == "" {
		return errors.New("listen.addr is required")
	}

	if _, err := c.Logging.ParseLevel(); err != nil {
		return err
	}

	return nil
}

// ParseLevel returns the configured log level; empty means info
func (l LoggingConfig) ParseLevel() (log.Level, error) {
	if strings.TrimSpace(l.Level) == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.TrimSpace(l.Level))
	if err != nil {
		return 0, fmt.Errorf("invalid logging.level: %q", l.Level)
	}
	return lvl, nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Write stores cfg at path as TOML
func Write(path string, cfg Config) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
