package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.Loader = (*Loader)(nil)

// Loader is a mock implementation of docindex.Loader.
type Loader struct {
	LoadFn func(ctx context.Context, location string) ([]byte, error)
}

func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	return l.LoadFn(ctx, location)
}

var _ docindex.Prober = (*Prober)(nil)

// Prober is a mock implementation of docindex.Prober.
type Prober struct {
	ProbeFn func(ctx context.Context, url string) (int, error)
}

func (p *Prober) Probe(ctx context.Context, url string) (int, error) {
	return p.ProbeFn(ctx, url)
}

var _ docindex.PageChecker = (*PageChecker)(nil)

// PageChecker is a mock implementation of docindex.PageChecker.
type PageChecker struct {
	CheckPagesFn func(ctx context.Context, idx *docindex.Index, lang string) ([]docindex.Problem, error)
}

func (c *PageChecker) CheckPages(ctx context.Context, idx *docindex.Index, lang string) ([]docindex.Problem, error) {
	return c.CheckPagesFn(ctx, idx, lang)
}
