package config

import (
	"github.com/arthur-debert/regexmark/pkg/paths"
	"github.com/arthur-debert/regexmark/pkg/rules"
)

// Config is the effective application configuration.
type Config struct {
	Settings SettingsConfig `koanf:"settings" toml:"settings"`
	Render   RenderConfig   `koanf:"render" toml:"render"`
	Logging  LoggingConfig  `koanf:"logging" toml:"logging"`
}

// SettingsConfig locates the persisted rule set.
type SettingsConfig struct {
	Path         string `koanf:"path" toml:"path"`
	PropertyName string `koanf:"property_name" toml:"property_name"`
}

// RenderConfig drives the render command.
type RenderConfig struct {
	Mode     string `koanf:"mode" toml:"mode"`
	Format   string `koanf:"format" toml:"format"`
	Styles   string `koanf:"styles" toml:"styles"`
	Width    int    `koanf:"width" toml:"width"`
	Sanitize bool   `koanf:"sanitize" toml:"sanitize"`
}

// LoggingConfig sets the default verbosity.
type LoggingConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// SettingsPath returns the configured rule set file, falling back to the
// XDG location.
func (c *Config) SettingsPath() string {
	if c.Settings.Path != "" {
		return c.Settings.Path
	}
	return paths.SettingsPath()
}

// ViewMode returns the configured render mode.
func (c *Config) ViewMode() rules.Mode {
	return rules.ParseMode(c.Render.Mode)
}
