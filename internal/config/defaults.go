package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ekisa-team/scivision/internal/manifest"
)

const (
	// CurrentVersion is the config format version written by Default.
	CurrentVersion = "1"

	// DefaultCommandTimeout bounds a single command backend invocation.
	DefaultCommandTimeout = 5 * time.Minute
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Source: SourceConfig{
			BaseURL:          manifest.DefaultBaseURL,
			ManifestFilename: manifest.DefaultFilename,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(DefaultStatePath(), "logs", "scivision.log"),
		},
	}
}

// applyDefaults fills fields left empty by a config file.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = def.Source.BaseURL
	}
	if c.Source.ManifestFilename == "" {
		c.Source.ManifestFilename = def.Source.ManifestFilename
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
	for name, cmd := range c.Backends.Commands {
		if cmd.Timeout == 0 {
			cmd.Timeout = DefaultCommandTimeout
			c.Backends.Commands[name] = cmd
		}
	}
}

// DefaultConfigPath returns the default path for the scivision config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "scivision", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "scivision")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "scivision")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "scivision")
		}
		return filepath.Join(home, ".config", "scivision")
	}
}

// DefaultStatePath returns the default path for scivision state such as logs.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "scivision", "state")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "scivision")
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "scivision")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, "scivision")
		}
		return filepath.Join(home, ".local", "state", "scivision")
	}
}
