package docindex

import (
	"strings"
)

// FormatOptions controls FormatMarkdown.
type FormatOptions struct {
	// Mapper, if set, turns leaf titles into links.
	Mapper *URLMapper

	// MaxDepth limits the rendered levels. Zero renders everything.
	MaxDepth int
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`, "`", "\\`", `#`, `\#`,
	`&`, `&amp;`, `<`, `&lt;`, `>`, `&gt;`,
)

// escapeMarkdown returns s as literal inline text on a single line. Text
// that would open a block (a list marker, an ordered list number, a
// heading or a quote) is escaped as well.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(strings.Join(strings.Fields(s), " "))
	if s == "" {
		return s
	}

	switch s[0] {
	case '+', '-':
		return `\` + s
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return s[:i] + `\` + s[i:]
	}
	return s
}

// FormatMarkdown renders the menu of a language as a nested markdown list,
// preceded by the language title and description when present.
// Returns ENOTFOUND if the language is not declared.
func FormatMarkdown(idx *Index, lang string, opts FormatOptions) (string, error) {
	l, ok := idx.Language(lang)
	if !ok {
		return "", Errorf(ENOTFOUND, "language %q not found", lang)
	}

	var sb strings.Builder
	if l.title != "" {
		sb.WriteString("# " + escapeMarkdown(l.title) + "\n\n")
	}
	if l.description != "" {
		sb.WriteString(escapeMarkdown(l.description) + "\n\n")
	}

	for e := range idx.Entries(lang) {
		if opts.MaxDepth > 0 && e.Depth >= opts.MaxDepth {
			continue
		}

		title := escapeMarkdown(e.Node.title)
		if e.Node.IsLeaf() && opts.Mapper != nil {
			u, err := opts.Mapper.URL(lang, e.Node.key)
			if err != nil {
				return "", err
			}
			title = "[" + title + "](" + u + ")"
		}

		sb.WriteString(strings.Repeat("  ", e.Depth))
		sb.WriteString("- " + title + "\n")
	}

	return sb.String(), nil
}

// FormatTree renders a language as an indented plain-text tree, one entry
// per line with its key and title. Section keys carry a trailing slash.
func FormatTree(idx *Index, lang string) string {
	var sb strings.Builder
	for e := range idx.Entries(lang) {
		sb.WriteString(strings.Repeat("  ", e.Depth))
		sb.WriteString(e.Node.key)
		if e.Node.IsSection() {
			sb.WriteString("/")
		}
		if e.Node.title != "" {
			sb.WriteString("  " + e.Node.title)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
