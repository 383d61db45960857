// Package config loads and saves the photobot configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for photobot.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Osascript OsascriptConfig `yaml:"osascript"`
	Export    ExportConfig    `yaml:"export"`
	Audit     AuditConfig     `yaml:"audit"`
	LogLevel  string          `yaml:"logLevel"`
}

// AppConfig names the host application being automated.
type AppConfig struct {
	Name string `yaml:"name"`
}

type OsascriptConfig struct {
	Bin            string `yaml:"bin"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	MaxOutputBytes int64  `yaml:"maxOutputBytes"`
}

// ExportConfig sets the destination used when export calls omit one.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"dbPath"`
}

// DefaultConfigDir returns ~/.photobot.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".photobot"
	}
	return filepath.Join(home, ".photobot")
}

// DefaultConfigPath returns ~/.photobot/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultExportDir returns ~/Pictures/<app>Export, the fixed per-user export
// destination.
func DefaultExportDir(app string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Pictures", app+"Export")
	}
	return filepath.Join(home, "Pictures", app+"Export")
}

func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the config at path, or returns defaults when the file does not
// exist. An unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills zero-valued fields so a partial config file works.
// The export dir follows the configured app name when unset.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "Photos"
	}
	if cfg.Osascript.Bin == "" {
		cfg.Osascript.Bin = "osascript"
	}
	if cfg.Osascript.TimeoutSeconds <= 0 {
		cfg.Osascript.TimeoutSeconds = 60
	}
	if cfg.Osascript.MaxOutputBytes <= 0 {
		cfg.Osascript.MaxOutputBytes = 50 << 20
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = DefaultExportDir(cfg.App.Name)
	}
	if cfg.Audit.DBPath == "" {
		cfg.Audit.DBPath = filepath.Join(DefaultConfigDir(), "audit.db")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
