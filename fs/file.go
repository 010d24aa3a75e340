package fs

import (
	"os"
	"path/filepath"
)

// AtomicFile writes a file with atomic replace semantics. Content is
// written to a temporary file next to the target; Commit renames it over
// the target and Abort discards it.
type AtomicFile struct {
	path string
	tmp  *os.File
}

// CreateFile starts writing path. Parent directories are created as needed.
func CreateFile(path string) (*AtomicFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{path: path, tmp: tmp}, nil
}

// Write implements io.Writer.
func (f *AtomicFile) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit makes the written content visible at the target path,
// replacing any existing file.
func (f *AtomicFile) Commit() error {
	if err := f.tmp.Sync(); err != nil {
		_ = f.Abort()
		return err
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Chmod(f.tmp.Name(), 0644); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.path)
}

// Abort discards the written content. The target is left untouched.
func (f *AtomicFile) Abort() error {
	_ = f.tmp.Close()
	return os.Remove(f.tmp.Name())
}
