// Package goldmark renders index menus as HTML.
package goldmark

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/fwojciec/docindex"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts the markdown menu of a language to HTML.
type Renderer struct {
	md goldmark.Markdown

	// Standalone wraps the menu in a complete HTML document.
	Standalone bool
}

// NewRenderer returns a Renderer producing XHTML-style output.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		),
	}
}

// Render writes the menu of lang as HTML to w.
// Returns ENOTFOUND if the language is not declared.
func (r *Renderer) Render(w io.Writer, idx *docindex.Index, lang string, opts docindex.FormatOptions) error {
	src, err := docindex.FormatMarkdown(idx, lang, opts)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := r.md.Convert([]byte(src), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	if !r.Standalone {
		_, err = body.WriteTo(w)
		return err
	}

	l, _ := idx.Language(lang)
	_, err = fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n<meta charset=\"utf-8\" />\n<title>%s</title>\n</head>\n<body>\n<nav>\n%s</nav>\n</body>\n</html>\n",
		html.EscapeString(lang), html.EscapeString(l.Title()), body.String())
	return err
}
