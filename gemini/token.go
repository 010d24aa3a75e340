package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/docindex"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docindex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally with the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for model, or for Model when
// model is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = Model
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens of text sent as a single user message.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
