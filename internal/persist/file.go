package persist

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/todo"
)

// ErrNotFound is returned by Load when no data file exists for the codec.
// It matches fs.ErrNotExist as well.
var ErrNotFound = errors.New("data file not found")

// FileStore saves and loads a store under a data directory.
type FileStore struct {
	dir    string
	backup bool
	logger *slog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithBackup keeps the previous data file as data.<ext>.bak on every save.
func WithBackup(enabled bool) Option {
	return func(f *FileStore) { f.backup = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *FileStore) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFileStore returns a FileStore rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string, opts ...Option) *FileStore {
	f := &FileStore{
		dir:    dir,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Dir returns the data directory.
func (f *FileStore) Dir() string {
	return f.dir
}

// Path returns the data file used for c.
func (f *FileStore) Path(c codec.Codec) string {
	return filepath.Join(f.dir, codec.FileName(c))
}

// BackupPath returns the backup file used for c.
func (f *FileStore) BackupPath(c codec.Codec) string {
	return f.Path(c) + ".bak"
}

// Save encodes s with c and replaces the data file.
func (f *FileStore) Save(s *todo.Store, c codec.Codec) error {
	data, err := c.Encode(s.Map())
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	path := f.Path(c)
	if f.backup {
		if err := copyFile(path, f.BackupPath(c)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("save: backup %s: %w", path, err)
		}
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	f.logger.Debug("store saved", "path", path, "codec", c.Name(), "bytes", len(data), "items", s.Len())
	return nil
}

// Load reads and decodes the data file for c.
//
// A missing file yields an error matching ErrNotFound. A file that exists but
// does not decode yields a *codec.Error.
func (f *FileStore) Load(c codec.Codec) (*todo.Store, error) {
	path := f.Path(c)
	return loadFrom(path, c, f.logger)
}

// LoadBackup reads the backup file for c.
func (f *FileStore) LoadBackup(c codec.Codec) (*todo.Store, error) {
	return loadFrom(f.BackupPath(c), c, f.logger)
}

func loadFrom(path string, c codec.Codec, logger *slog.Logger) (*todo.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w: %w", path, ErrNotFound, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("load: %w", err)
	}

	items, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	s, err := todo.FromMap(items)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	logger.Debug("store loaded", "path", path, "codec", c.Name(), "bytes", len(data), "items", s.Len())
	return s, nil
}

// Exists reports whether a data file for c is present.
func (f *FileStore) Exists(c codec.Codec) bool {
	_, err := os.Stat(f.Path(c))
	return err == nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return writeFileAtomic(dst, data, 0o644)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	committed = true
	return nil
}
