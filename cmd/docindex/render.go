package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/etree"
	"github.com/fwojciec/docindex/goldmark"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	opts := docindex.FormatOptions{MaxDepth: c.Depth}
	if c.BaseURL != "" {
		opts.Mapper = &docindex.URLMapper{BaseURL: c.BaseURL, Extension: c.Ext}
	}

	err = writeOutput(deps, c.Output, func(w io.Writer) error {
		if c.HTML || c.Standalone {
			r := goldmark.NewRenderer()
			r.Standalone = c.Standalone
			return r.Render(w, idx, c.Lang, opts)
		}
		md, err := docindex.FormatMarkdown(idx, c.Lang, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, md)
		return err
	})
	if err != nil {
		return printError(deps, err)
	}
	return nil
}

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	mapper := &docindex.URLMapper{BaseURL: c.BaseURL, Extension: c.Ext}
	err = writeOutput(deps, c.Output, func(w io.Writer) error {
		if err := etree.NewSitemapWriter().WriteSitemap(w, idx, mapper); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	})
	if err != nil {
		return printError(deps, err)
	}
	return nil
}
