package docindex

import (
	"context"
	"io"
)

// Loader reads the raw bytes of an index from a location such as a file
// path or URL.
type Loader interface {
	// Load returns the content at location.
	// Returns ENOTFOUND if nothing exists there.
	Load(ctx context.Context, location string) ([]byte, error)
}

// Decoder parses an encoded index. Structural problems are reported as
// EMALFORMED errors.
type Decoder interface {
	Decode(data []byte) (*Index, error)
}

// Encoder writes an index in its declarative shape, preserving order.
type Encoder interface {
	Encode(w io.Writer, idx *Index) error
}
