// Package paths provides centralized path handling for regexmark.
// It implements XDG Base Directory specification compliance so settings,
// configuration and logs land in the usual per-user locations.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for regexmark
	EnvConfigDir = "REGEXMARK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for regexmark
	EnvStateDir = "REGEXMARK_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name used below each XDG base directory
	AppDirName = "regexmark"

	// SettingsFileName holds the persisted rule set
	SettingsFileName = "settings.json"

	// ConfigFileName holds the application configuration
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "regexmark.log"
)

// ConfigDir returns the configuration directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the state directory
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// SettingsPath returns the default location of the persisted rule set
func SettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// ConfigPath returns the location of the user configuration file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFilePath returns the path to the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}
