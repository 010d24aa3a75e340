// Package fs provides file-based loading, writing and checking of indexes
// and the pages they reference.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/docindex"
)

// Ensure Loader implements docindex.Loader at compile time.
var _ docindex.Loader = (*Loader)(nil)

// Loader reads index files from the local filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the content of the file at location.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "index file %q not found", location)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
