package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the user's configuration
type Config struct {
	Theme       string        `yaml:"theme"`
	Themes      []string      `yaml:"themes,omitempty"` // Cycled by the theme key
	WordWrap    bool          `yaml:"word_wrap"`
	LineNumbers bool          `yaml:"line_numbers"`
	TabWidth    int           `yaml:"tab_width"`
	Dialog      DialogBackend `yaml:"dialog"`
	RecentLimit int           `yaml:"recent_limit"`
	LogLevel    string        `yaml:"log_level"`
	Debug       bool          `yaml:"debug"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Theme:       "onedark",
		Themes:      []string{"onedark", "monokai", "dracula", "nord", "solarized-dark", "github"},
		LineNumbers: true,
		TabWidth:    4,
		Dialog:      DialogTerminal,
		RecentLimit: 20,
		LogLevel:    "info",
	}
}

// applyDefaults replaces values explicitly emptied in a config file
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if len(c.Themes) == 0 {
		c.Themes = d.Themes
	}
	if c.TabWidth == 0 {
		c.TabWidth = d.TabWidth
	}
	if c.Dialog == "" {
		c.Dialog = d.Dialog
	}
	if c.RecentLimit == 0 {
		c.RecentLimit = d.RecentLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// applyEnv lets environment variables override file settings
func (c *Config) applyEnv() {
	if v := os.Getenv("SCRIBE_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("SCRIBE_DIALOG"); v != "" {
		c.Dialog = DialogBackend(strings.ToLower(v))
	}
}

// Validate reports settings the editor cannot run with
func (c *Config) Validate() error {
	if _, ok := LookupDialogBackend(c.Dialog); !ok {
		return fmt.Errorf("dialog must be one of %s, got %q", dialogBackendNames(), c.Dialog)
	}
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab_width must be between 1 and 16, got %d", c.TabWidth)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent_limit must not be negative, got %d", c.RecentLimit)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// GlobalDir returns the global config directory path (~/.scribe)
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scribe"), nil
}

// globalConfigPath returns the global config file path (~/.scribe/config.yaml)
func globalConfigPath() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// projectConfigPath returns the project-level config path (.scribe/config.yaml in cwd)
func projectConfigPath() string {
	return filepath.Join(".scribe", "config.yaml")
}

// LogPath returns the log file path (~/.scribe/logs/scribe.log)
func LogPath() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "scribe.log"), nil
}

// RecentPath returns the recent files database path (~/.scribe/recent.db)
func RecentPath() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "recent.db"), nil
}

// Path returns the file Load reads and Update writes: the project config
// when it exists, else the global one.
func Path() (string, error) {
	if _, err := os.Stat(projectConfigPath()); err == nil {
		return projectConfigPath(), nil
	}
	return globalConfigPath()
}

// Load reads the config from disk, checking project config first, then global.
// Missing files yield the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		// No config exists, return default (don't auto-create)
		cfg = DefaultConfig()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// LoadFile reads a single config file. A missing file returns an error
// wrapping os.ErrNotExist.
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// readFile parses path without environment overrides
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Unset keys keep their defaults
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Update applies edit to the config stored at path and writes it back.
// Settings overridden for this run only (flags, environment) are not
// written; a missing file starts from the defaults.
func Update(path string, edit func(*Config)) error {
	cfg, err := readFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return err
	}
	edit(cfg)
	return SaveFile(path, cfg)
}

// SaveFile writes the config to path, creating its directory
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// NextTheme returns the theme that follows current in the cycle
func (c *Config) NextTheme(current string) string {
	if len(c.Themes) == 0 {
		return current
	}
	for i, t := range c.Themes {
		if t == current {
			return c.Themes[(i+1)%len(c.Themes)]
		}
	}
	return c.Themes[0]
}
