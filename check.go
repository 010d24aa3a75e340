package docindex

import "context"

// ProblemKind classifies a problem found by a checker.
type ProblemKind string

// Problem kinds.
const (
	// ProblemMissing is a leaf whose page file does not exist.
	ProblemMissing ProblemKind = "missing"

	// ProblemOrphan is a page file that no leaf references.
	ProblemOrphan ProblemKind = "orphan"

	// ProblemBroken is a leaf whose published URL cannot be reached.
	ProblemBroken ProblemKind = "broken"
)

// Problem describes one finding of a check.
type Problem struct {
	Kind     ProblemKind `json:"kind"`
	Language string      `json:"language"`
	Path     string      `json:"path,omitempty"` // empty for orphans
	Target   string      `json:"target"`         // file path or URL
	Detail   string      `json:"detail,omitempty"`
}

// PageChecker verifies that the leaves of an index have page files.
type PageChecker interface {
	// CheckPages reports missing and orphaned pages of a language.
	// Returns ENOTFOUND if the language is not declared.
	CheckPages(ctx context.Context, idx *Index, lang string) ([]Problem, error)
}

// Prober checks whether a URL can be reached.
type Prober interface {
	// Probe returns the HTTP status code for url.
	// A transport failure is returned as an error.
	Probe(ctx context.Context, url string) (status int, err error)
}

// CheckProgress reports progress during link checking.
type CheckProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// CheckProgressFunc is called as URLs are checked.
type CheckProgressFunc func(CheckProgress)

// DomainLimiter rate limits requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
