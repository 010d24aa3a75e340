// Package etree writes XML sitemaps of the pages an index publishes.
package etree

import (
	"io"

	"github.com/beevik/etree"
	"github.com/fwojciec/docindex"
)

// Sitemap namespaces.
const (
	SitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNS   = "http://www.w3.org/1999/xhtml"
)

// Ensure SitemapWriter implements docindex.SitemapWriter at compile time.
var _ docindex.SitemapWriter = (*SitemapWriter)(nil)

// SitemapWriter writes a urlset with one entry per leaf of every language.
// A leaf whose path also exists in other languages lists all of its
// translations as xhtml:link alternates.
type SitemapWriter struct {
	// Indent is the number of spaces per nesting level. Zero writes the
	// document on a single line.
	Indent int
}

// NewSitemapWriter returns a SitemapWriter that indents by two spaces.
func NewSitemapWriter() *SitemapWriter {
	return &SitemapWriter{Indent: 2}
}

// WriteSitemap writes the sitemap of idx to w.
func (s *SitemapWriter) WriteSitemap(w io.Writer, idx *docindex.Index, mapper *docindex.URLMapper) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNS)
	urlset.CreateAttr("xmlns:xhtml", XHTMLNS)

	for _, lang := range idx.Languages() {
		for p, n := range idx.Walk(lang) {
			if n.IsSection() {
				continue
			}
			loc, err := mapper.URL(lang, n.Key())
			if err != nil {
				return err
			}

			u := urlset.CreateElement("url")
			u.CreateElement("loc").SetText(loc)

			alternates, err := s.alternates(idx, p, mapper)
			if err != nil {
				return err
			}
			if len(alternates) < 2 {
				continue
			}
			for _, alt := range alternates {
				link := u.CreateElement("xhtml:link")
				link.CreateAttr("rel", "alternate")
				link.CreateAttr("hreflang", alt.lang)
				link.CreateAttr("href", alt.href)
			}
		}
	}

	if s.Indent > 0 {
		doc.Indent(s.Indent)
	}
	_, err := doc.WriteTo(w)
	return err
}

type alternate struct {
	lang string
	href string
}

// alternates returns the URL of the leaf at path in every language that
// has one, in declared language order.
func (s *SitemapWriter) alternates(idx *docindex.Index, path string, mapper *docindex.URLMapper) ([]alternate, error) {
	var alts []alternate
	for _, lang := range idx.Languages() {
		n, ok := idx.Lookup(lang, path)
		if !ok || !n.IsLeaf() {
			continue
		}
		href, err := mapper.URL(lang, n.Key())
		if err != nil {
			return nil, err
		}
		alts = append(alts, alternate{lang: lang, href: href})
	}
	return alts, nil
}
