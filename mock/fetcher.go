package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docindex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ docindex.NavExtractor = (*NavExtractor)(nil)

// NavExtractor is a mock implementation of docindex.NavExtractor.
type NavExtractor struct {
	ExtractNavFn func(html, baseURL string) (docindex.Object, error)
}

func (e *NavExtractor) ExtractNav(html, baseURL string) (docindex.Object, error) {
	return e.ExtractNavFn(html, baseURL)
}
