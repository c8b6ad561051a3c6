package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appName  = "thingstodo"
	fileName = "config.toml"

	// EnvConfig overrides the config file location.
	EnvConfig = "THINGSTODO_CONFIG"
)

// ResolvePath returns the config file location: $THINGSTODO_CONFIG if set,
// else $XDG_CONFIG_HOME/thingstodo/config.toml.
func ResolvePath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return ExpandPath(p)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// ConfigDir returns $XDG_CONFIG_HOME/thingstodo, falling back to
// ~/.config/thingstodo.
func ConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName), nil
}

// DefaultDataDir returns $XDG_DATA_HOME/thingstodo, falling back to
// ~/.local/share/thingstodo.
func DefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// DataDir returns the directory holding data.<ext>.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return ExpandPath(c.Storage.DataDir)
	}
	return DefaultDataDir()
}

// DiagnosticsDir returns the directory for benchmark artifacts.
func (c *Config) DiagnosticsDir() (string, error) {
	if c.Diagnostics.Dir != "" {
		return ExpandPath(c.Diagnostics.Dir)
	}
	data, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "diagnostics"), nil
}

// HistoryPath returns the benchmark history database file.
func (c *Config) HistoryPath() (string, error) {
	if c.Diagnostics.HistoryDB != "" {
		return ExpandPath(c.Diagnostics.HistoryDB)
	}
	data, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "history.db"), nil
}
