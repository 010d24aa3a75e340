package http

import (
	"context"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure Loader implements docindex.Loader at compile time.
var _ docindex.Loader = (*Loader)(nil)

// Loader downloads index files from http(s) URLs, retrying transient
// failures.
type Loader struct {
	*Client

	// RetryDelays are the waits between attempts.
	// Defaults to docindex.DefaultRetryDelays.
	RetryDelays []time.Duration

	// OnRetry, if set, is called before every retry.
	OnRetry docindex.RetryFunc
}

// NewLoader creates a new Loader.
func NewLoader(opts ...Option) *Loader {
	return &Loader{
		Client:      newClient(opts),
		RetryDelays: docindex.DefaultRetryDelays(),
	}
}

// Load returns the body at location. Returns ENOTFOUND if the server
// reports the resource as missing.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	var body []byte
	err := docindex.Retry(ctx, l.RetryDelays, l.OnRetry, func(ctx context.Context) error {
		var err error
		body, err = l.get(ctx, location)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
