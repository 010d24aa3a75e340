package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docindex"
)

// Ensure PageChecker implements docindex.PageChecker at compile time.
var _ docindex.PageChecker = (*PageChecker)(nil)

// PageChecker verifies leaves against a directory of page files laid out
// as <root>/<lang>/<leaf key>.
type PageChecker struct {
	root string

	// Extensions limits orphan detection to files with these extensions.
	// When empty, the extensions of the checked leaves are used.
	Extensions []string
}

// NewPageChecker creates a new PageChecker for the given root directory.
func NewPageChecker(root string) *PageChecker {
	return &PageChecker{root: root}
}

// PagePath returns the file a leaf key refers to. Returns false if the key
// would resolve outside the language directory.
func (c *PageChecker) PagePath(lang, key string) (string, bool) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return filepath.Join(c.root, lang, rel), true
}

// CheckPages reports leaves without a page file and page files that no
// leaf references. Problems are ordered as the leaves are walked, followed
// by orphans in lexical order.
func (c *PageChecker) CheckPages(ctx context.Context, idx *docindex.Index, lang string) ([]docindex.Problem, error) {
	if _, ok := idx.Language(lang); !ok {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "language %q not found", lang)
	}

	var problems []docindex.Problem
	referenced := make(map[string]bool)
	extensions := make(map[string]bool)
	for _, ext := range c.Extensions {
		extensions[ext] = true
	}
	inferExtensions := len(extensions) == 0

	for p, n := range idx.Walk(lang) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n.IsSection() {
			continue
		}

		key := n.Key()
		if inferExtensions && path.Ext(key) != "" {
			extensions[path.Ext(key)] = true
		}

		file, ok := c.PagePath(lang, key)
		if !ok {
			problems = append(problems, docindex.Problem{
				Kind:     docindex.ProblemMissing,
				Language: lang,
				Path:     p,
				Target:   key,
				Detail:   "page path escapes the language directory",
			})
			continue
		}
		referenced[file] = true

		info, err := os.Stat(file)
		switch {
		case errors.Is(err, iofs.ErrNotExist):
			problems = append(problems, docindex.Problem{
				Kind:     docindex.ProblemMissing,
				Language: lang,
				Path:     p,
				Target:   file,
			})
		case err != nil:
			return nil, err
		case info.IsDir():
			problems = append(problems, docindex.Problem{
				Kind:     docindex.ProblemMissing,
				Language: lang,
				Path:     p,
				Target:   file,
				Detail:   "is a directory",
			})
		}
	}

	orphans, err := c.orphans(ctx, lang, referenced, extensions)
	if err != nil {
		return nil, err
	}
	return append(problems, orphans...), nil
}

// orphans lists page files under the language directory that no leaf
// references. A missing language directory has no orphans.
func (c *PageChecker) orphans(ctx context.Context, lang string, referenced, extensions map[string]bool) ([]docindex.Problem, error) {
	dir := filepath.Join(c.root, lang)
	if _, err := os.Stat(dir); errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}

	var problems []docindex.Problem
	err := filepath.WalkDir(dir, func(file string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && file != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || referenced[file] || !extensions[filepath.Ext(file)] {
			return nil
		}
		problems = append(problems, docindex.Problem{
			Kind:     docindex.ProblemOrphan,
			Language: lang,
			Target:   file,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return problems, nil
}
