package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const template = `# thingstodo configuration

[storage]
data_dir = ""                 # empty = $XDG_DATA_HOME/thingstodo
default_encoding = "msgpack"  # json, msgpack, cbor, bson, flatbuffers, yaml, toml, cue
use_backup = true             # keep data.<ext>.bak from the previous save

[diagnostics]
dir = ""                      # empty = <data_dir>/diagnostics
parallel = false              # run each codec on its own goroutine
record_history = true         # store bench runs in history_db
history_db = ""               # empty = <data_dir>/history.db

[edit]
strict = false                # reject edits onto an existing name

[log]
level = "info"                # debug, info, warn, error
format = "text"               # text, json
`

// InitFile writes the default configuration template to path, creating
// parent directories. It refuses to overwrite an existing file.
func InitFile(path string) (string, error) {
	if path == "" {
		resolved, err := ResolvePath()
		if err != nil {
			return "", err
		}
		path = resolved
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("config: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
