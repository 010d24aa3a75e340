package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
)

// Run executes the scrape command. When the server HTML has no usable
// menu, or cannot be fetched, the page is rendered again in the browser.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	contents, err := c.scrape(deps, deps.Fetcher)
	if deps.Browser != nil && c.needsBrowser(deps, contents, err) {
		fmt.Fprintf(deps.Stderr, "No menu in server HTML of %s, rendering it in a browser\n", c.URL)
		contents, err = c.scrape(deps, deps.Browser)
	}
	if err != nil {
		return printError(deps, err)
	}
	if len(contents) == 0 {
		return printError(deps, docindex.Errorf(docindex.ENOTFOUND, "navigation menu at %s has no entries", c.URL))
	}

	idx, err := docindex.Parse(docindex.Object{
		{Key: "languages", Value: []any{c.Lang}},
		{Key: c.Lang, Value: docindex.Object{
			{Key: "title", Value: c.Title},
			{Key: "description", Value: ""},
			{Key: "contents", Value: contents},
		}},
	})
	if err != nil {
		return printError(deps, err)
	}

	s := idx.Stats(c.Lang)
	fmt.Fprintf(deps.Stderr, "Scraped %d sections and %d leaves from %s\n", s.Sections, s.Leaves, c.URL)

	if err := writeIndex(deps, idx, c.Output, ""); err != nil {
		return printError(deps, err)
	}
	return nil
}

// scrape fetches the page with f and extracts its menu.
func (c *ScrapeCmd) scrape(deps *Dependencies, f docindex.Fetcher) (docindex.Object, error) {
	html, err := f.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return nil, err
	}
	return deps.Nav.ExtractNav(html, c.URL)
}

// needsBrowser reports whether a failed or empty scrape may succeed once
// scripts have run. Invalid URLs and canceled runs are final.
func (c *ScrapeCmd) needsBrowser(deps *Dependencies, contents docindex.Object, err error) bool {
	if deps.Ctx.Err() != nil || docindex.ErrorCode(err) == docindex.EINVALID {
		return false
	}
	return err != nil || len(contents) == 0
}

// Run executes the translate command.
func (c *TranslateCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	translated, err := deps.Translator.Translate(deps.Ctx, idx, c.From, c.To)
	if err != nil {
		return printError(deps, err)
	}

	s := translated.Stats(c.To)
	fmt.Fprintf(deps.Stderr, "Translated %d entries from %s to %s\n", s.Sections+s.Leaves, c.From, c.To)

	format := ""
	if c.Output == "" {
		format = formatOf(c.File)
	}
	if err := writeIndex(deps, translated, c.Output, format); err != nil {
		return printError(deps, err)
	}
	return nil
}
