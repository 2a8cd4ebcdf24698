// Package appconfig manages application settings and runtime file paths.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds application-level preferences. The profile store itself
// lives in config.json and is owned by internal/store; this file only covers
// how masuk behaves around it.
type Settings struct {
	// SSHCommand is the remote-login binary to invoke. Defaults to "ssh".
	SSHCommand string `yaml:"ssh_command"`
	// LogLevel controls diagnostic logging: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// RedactErrors replaces the home directory with "~" in error output.
	RedactErrors bool `yaml:"redact_errors"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		SSHCommand:   "ssh",
		LogLevel:     "warn",
		RedactErrors: true,
	}
}

// ConfigDir returns the application config directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/masuk.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "masuk"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "masuk"), nil
}

// ProfileFilePath returns the full path to config.json, the profile store.
func ProfileFilePath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.json"), nil
}

// Load reads config.yaml from the config directory.
// If the file doesn't exist, creates it with defaults.
func Load() (Settings, error) {
	d, err := ConfigDir()
	if err != nil {
		return Settings{}, err
	}
	if err := os.MkdirAll(d, 0o700); err != nil {
		return Settings{}, err
	}
	path := filepath.Join(d, "config.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return Settings{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return normalize(cfg), nil
}

// Save writes settings to config.yaml.
func Save(cfg Settings) error {
	d, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0o700); err != nil {
		return err
	}
	path := filepath.Join(d, "config.yaml")
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func normalize(cfg Settings) Settings {
	if cfg.SSHCommand == "" {
		cfg.SSHCommand = "ssh"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		cfg.LogLevel = "warn"
	}
	return cfg
}
