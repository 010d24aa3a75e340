package http

import (
	"context"
	"io"
	"net/http"

	"github.com/fwojciec/docindex"
)

// Ensure Prober implements docindex.Prober at compile time.
var _ docindex.Prober = (*Prober)(nil)

// Prober checks that URLs respond. It sends HEAD requests and falls back
// to GET for servers that do not allow HEAD.
type Prober struct {
	*Client
}

// NewProber creates a new Prober.
func NewProber(opts ...Option) *Prober {
	return &Prober{Client: newClient(opts)}
}

// Probe returns the final status code of url after redirects.
func (p *Prober) Probe(ctx context.Context, url string) (int, error) {
	status, err := p.probe(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		return p.probe(ctx, http.MethodGet, url)
	}
	return status, nil
}

func (p *Prober) probe(ctx context.Context, method, url string) (int, error) {
	resp, err := p.do(ctx, method, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain a little so the connection can be reused.
	_, _ = io.CopyN(io.Discard, resp.Body, 4096)
	return resp.StatusCode, nil
}
