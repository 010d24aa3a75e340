package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of docindex.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

var _ docindex.Translator = (*Translator)(nil)

// Translator is a mock implementation of docindex.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, idx *docindex.Index, from, to string) (*docindex.Index, error)
}

func (t *Translator) Translate(ctx context.Context, idx *docindex.Index, from, to string) (*docindex.Index, error) {
	return t.TranslateFn(ctx, idx, from, to)
}
