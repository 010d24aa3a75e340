package docindex

import "context"

// Translator produces a new language for an index by translating the titles
// of an existing one.
type Translator interface {
	// Translate returns a copy of idx in which language to mirrors the tree
	// of language from with translated titles.
	// Returns ENOTFOUND if from is not declared.
	Translate(ctx context.Context, idx *Index, from, to string) (*Index, error)
}
