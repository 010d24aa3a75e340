// Package goquery extracts index contents from the navigation menus of
// rendered documentation sites.
package goquery

import (
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
)

// Ensure NavExtractor implements docindex.NavExtractor at compile time.
var _ docindex.NavExtractor = (*NavExtractor)(nil)

// NavExtractor turns a nested list menu into index contents. Each list
// item becomes a node titled by its link text; items with a nested list
// become sections. Leaf keys are link paths relative to the directory of
// the base URL.
type NavExtractor struct {
	// Selector locates the menu. When empty, the menu of the detected
	// framework is used, falling back to the first <nav> element.
	Selector string
}

// NewNavExtractor creates a new NavExtractor.
func NewNavExtractor() *NavExtractor {
	return &NavExtractor{}
}

// ExtractNav parses html and returns its menu as a contents mapping.
// Returns EINVALID for an unparsable base URL and ENOTFOUND when no menu
// list is found.
func (e *NavExtractor) ExtractNav(html string, baseURL string) (docindex.Object, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docindex.Errorf(docindex.EINVALID, "failed to parse HTML: %v", err)
	}

	list := e.menu(doc)
	if list.Length() == 0 {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "navigation menu not found")
	}

	dir := base.Path
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}

	b := &navBuilder{base: base, dir: dir, paths: make(map[string]bool)}
	return b.list(list, ""), nil
}

// menu returns the top-level list of the navigation menu.
func (e *NavExtractor) menu(doc *goquery.Document) *goquery.Selection {
	var root *goquery.Selection
	switch {
	case e.Selector != "":
		root = doc.Find(e.Selector).First()
	default:
		if f, ok := detect(doc); ok {
			root = doc.Find(f.menu).First()
		}
		if root == nil || root.Length() == 0 {
			root = doc.Find("nav").First()
		}
	}

	if root.Is("ul, ol") {
		return root
	}
	return root.Find("ul, ol").First()
}

type navBuilder struct {
	base  *url.URL
	dir   string
	paths map[string]bool
}

// list converts the items of a list. Items that would produce a duplicate
// key or path are skipped.
func (b *navBuilder) list(list *goquery.Selection, parent string) docindex.Object {
	contents := docindex.Object{}
	keys := make(map[string]bool)

	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		anchor := li.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
			return a.Closest("li").IsSelection(li)
		}).First()
		sub := li.Find("ul, ol").First()

		var key string
		if href, ok := anchor.Attr("href"); ok {
			key = b.key(href)
		}
		title := label(li, anchor)

		isSection := sub.ChildrenFiltered("li").Length() > 0
		if isSection {
			if key != "" {
				key = strings.TrimSuffix(key, path.Ext(key))
			} else {
				key = slug(title)
			}
		}
		if key == "" || keys[key] {
			return
		}

		p := key
		if parent != "" {
			p = parent + "/" + key
		}
		if b.paths[p] {
			return
		}

		node := docindex.Object{{Key: "title", Value: title}}
		if isSection {
			node = append(node, docindex.Field{Key: "contents", Value: b.list(sub, p)})
		}

		keys[key] = true
		b.paths[p] = true
		contents = append(contents, docindex.Field{Key: key, Value: node})
	})

	return contents
}

// key returns the path of href relative to the base directory, or "" for
// links that leave it.
func (b *navBuilder) key(href string) string {
	if strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := b.base.ResolveReference(ref)
	if u.Host != b.base.Host {
		return ""
	}

	p := path.Clean(u.Path)
	if p == b.dir || p+"/" == b.dir {
		return "index"
	}
	if !strings.HasPrefix(p, b.dir) {
		return ""
	}
	return strings.TrimPrefix(p, b.dir)
}

// label returns the item's link text, or its own text without nested
// lists when it has no link.
func label(li, anchor *goquery.Selection) string {
	text := anchor.Text()
	if anchor.Length() == 0 {
		item := li.Clone()
		item.Find("ul, ol").Remove()
		text = item.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

// slug derives a key from a title.
func slug(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "data:")
}
