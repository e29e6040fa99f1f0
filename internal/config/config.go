// Package config handles the global ~/.earshot/config.yaml settings.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds global earshot settings.
type Config struct {
	// Output is the default compilation database filename.
	Output string `yaml:"output"`
	// Library is the path to the interception shared library. Empty means
	// discover it beside the earshot executable.
	Library string `yaml:"library"`
	// History controls whether runs are recorded in the history store.
	History bool `yaml:"history"`
	// Debug configures file logging.
	Debug DebugConfig `yaml:"debug"`
}

// DebugConfig holds debug log file settings.
type DebugConfig struct {
	// RetentionDays is how many days of debug logs to keep.
	RetentionDays int `yaml:"retention_days"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:  "compile_commands.json",
		History: true,
		Debug:   DebugConfig{RetentionDays: 7},
	}
}

// Load reads ~/.earshot/config.yaml and applies environment overrides. A
// missing or malformed file is tolerated; defaults apply.
func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(filepath.Join(Dir(), "config.yaml")); err == nil {
		_ = yaml.Unmarshal(data, cfg)
	}

	if lib := os.Getenv("EARSHOT_LIBRARY"); lib != "" {
		cfg.Library = lib
	}
	if hist := os.Getenv("EARSHOT_HISTORY"); hist != "" {
		if enabled, err := strconv.ParseBool(hist); err == nil {
			cfg.History = enabled
		}
	}

	return cfg, nil
}

// Dir returns the path to ~/.earshot.
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".earshot")
	}
	return filepath.Join(homeDir, ".earshot")
}

// DebugDir returns the debug log directory.
func DebugDir() string {
	return filepath.Join(Dir(), "debug")
}

// HistoryPath returns the history database path.
func HistoryPath() string {
	return filepath.Join(Dir(), "history.db")
}
