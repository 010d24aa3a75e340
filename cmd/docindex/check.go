package main

import (
	"fmt"
	"sync"
	"text/tabwriter"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/check"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	if c.Root == "" && c.BaseURL == "" {
		return printError(deps, docindex.Errorf(docindex.EINVALID, "nothing to check: set --root and/or --base-url"))
	}

	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	langs := idx.Languages()
	if c.Lang != "" {
		if _, ok := idx.Language(c.Lang); !ok {
			return printError(deps, docindex.Errorf(docindex.ENOTFOUND, "language %q not found", c.Lang))
		}
		langs = []string{c.Lang}
	}

	var problems []docindex.Problem
	if c.Root != "" {
		for _, lang := range langs {
			found, err := deps.Pages.CheckPages(deps.Ctx, idx, lang)
			if err != nil {
				return printError(deps, err)
			}
			problems = append(problems, found...)
		}
	}

	if c.BaseURL != "" {
		links := &check.LinkChecker{
			Prober:      deps.Prober,
			RateLimiter: deps.Limiter,
			Concurrency: c.Concurrency,
		}
		mapper := &docindex.URLMapper{BaseURL: c.BaseURL, Extension: c.Ext}
		var mu sync.Mutex
		progress := func(p docindex.CheckProgress) {
			mu.Lock()
			defer mu.Unlock()
			if p.Error != nil {
				fmt.Fprintf(deps.Stderr, "[%d/%d] FAIL %s\n", p.Completed, p.Total, p.URL)
			} else {
				fmt.Fprintf(deps.Stderr, "[%d/%d] ok %s\n", p.Completed, p.Total, p.URL)
			}
		}
		for _, lang := range langs {
			found, err := links.CheckLinks(deps.Ctx, idx, lang, mapper, progress)
			if err != nil {
				return printError(deps, err)
			}
			problems = append(problems, found...)
		}
	}

	if len(problems) == 0 {
		fmt.Fprintln(deps.Stdout, "No problems found.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, p := range problems {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Kind, p.Language, p.Path, p.Target, p.Detail)
	}
	_ = tw.Flush()

	return printError(deps, docindex.Errorf(docindex.EINVALID, "%d problems found", len(problems)))
}
