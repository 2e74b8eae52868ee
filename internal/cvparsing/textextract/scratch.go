package textextract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Scratch hands out uniquely named, short-lived files for decoders that
// need a path. Every file is owned by exactly one parse invocation.
type Scratch struct {
	dir string
}

// NewScratch creates scratch storage in dir; empty dir means os.TempDir().
func NewScratch(dir string) *Scratch {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Scratch{dir: dir}
}

// Dir returns the directory scratch files are created in
func (s *Scratch) Dir() string {
	return s.dir
}

// Write stores data in a new scratch file with the given extension.
// The returned release func removes the file and must be called on every
// exit path; it is safe to call more than once.
func (s *Scratch) Write(data []byte, ext string) (string, func(), error) {
	path := filepath.Join(s.dir, fmt.Sprintf("cv-%s.%s", uuid.NewString(), ext))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", func() {}, fmt.Errorf("create scratch file: %w", err)
	}
	release := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		release()
		return "", func() {}, fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		release()
		return "", func() {}, fmt.Errorf("close scratch file: %w", err)
	}
	return path, release, nil
}
