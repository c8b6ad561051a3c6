// Package config parses the thingstodo TOML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/roach88/thingstodo/internal/codec"
)

// Config is the top-level configuration file.
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Edit        EditConfig        `toml:"edit"`
	Log         LogConfig         `toml:"log"`
}

// StorageConfig controls where and how the todo list is persisted.
type StorageConfig struct {
	DataDir         string `toml:"data_dir"` // empty = $XDG_DATA_HOME/thingstodo
	DefaultEncoding string `toml:"default_encoding"`
	UseBackup       bool   `toml:"use_backup"`
}

// DiagnosticsConfig controls the codec benchmark.
type DiagnosticsConfig struct {
	Dir           string `toml:"dir"` // empty = <data_dir>/diagnostics
	Parallel      bool   `toml:"parallel"`
	RecordHistory bool   `toml:"record_history"`
	HistoryDB     string `toml:"history_db"` // empty = <data_dir>/history.db
}

// EditConfig controls the edit command.
type EditConfig struct {
	Strict bool `toml:"strict"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Defaults returns a Config with the built-in defaults.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			DefaultEncoding: codec.DefaultName,
			UseBackup:       true,
		},
		Diagnostics: DiagnosticsConfig{
			RecordHistory: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration against the codecs in reg. It returns
// all found issues joined together.
func (c *Config) Validate(reg *codec.Registry) error {
	var errs []error

	if strings.TrimSpace(c.Storage.DefaultEncoding) == "" {
		errs = append(errs, fmt.Errorf("storage.default_encoding must not be empty"))
	} else if reg != nil {
		if _, err := reg.Lookup(c.Storage.DefaultEncoding); err != nil {
			errs = append(errs, fmt.Errorf("storage.default_encoding: %w", err))
		}
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel returns the configured log level. Unknown levels map to info;
// Validate reports them.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", s)
}

// Load reads the configuration at path. An empty path resolves through
// ResolvePath; a resolved file that does not exist yields Defaults. An
// explicit path must exist. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		resolved, err := ResolvePath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	cfg := Defaults()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
	}

	return &cfg, nil
}
