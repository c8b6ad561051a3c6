package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/thingstodo/internal/codec"
)

// DiagnosticDir holds the per-codec artifacts of a harness run.
type DiagnosticDir struct {
	dir string
}

// NewDiagnosticDir returns a DiagnosticDir rooted at dir.
func NewDiagnosticDir(dir string) *DiagnosticDir {
	return &DiagnosticDir{dir: dir}
}

// Dir returns the directory.
func (d *DiagnosticDir) Dir() string {
	return d.dir
}

// Path returns "<dir>/<codec>.dat".
func (d *DiagnosticDir) Path(c codec.Codec) string {
	return filepath.Join(d.dir, c.Name()+".dat")
}

// Write stores the encoded bytes produced by c, overwriting any earlier run.
func (d *DiagnosticDir) Write(c codec.Codec, data []byte) error {
	if err := writeFileAtomic(d.Path(c), data, 0o644); err != nil {
		return fmt.Errorf("write diagnostic %s: %w", c.Name(), err)
	}
	return nil
}

// Read returns the bytes last written for c.
func (d *DiagnosticDir) Read(c codec.Codec) ([]byte, error) {
	data, err := os.ReadFile(d.Path(c))
	if err != nil {
		return nil, fmt.Errorf("read diagnostic %s: %w", c.Name(), err)
	}
	return data, nil
}
