package goquery_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainMenu = `<html><body>
<header><nav><a href="/">Home</a></nav></header>
<nav class="menu">
  <ul>
    <li><a href="/manual/en/intro.html">Introduction</a></li>
    <li>
      <a href="/manual/en/models/">Models</a>
      <ul>
        <li><a href="/manual/en/models/basics.html">Basics</a></li>
        <li><a href="/manual/en/models/basics.html#top">Basics again</a></li>
        <li><a href="https://other.example.com/x.html">External</a></li>
      </ul>
    </li>
    <li>
      <span>Getting   Help</span>
      <ul>
        <li><a href="/manual/en/faq.html">FAQ</a></li>
      </ul>
    </li>
    <li><a href="javascript:void(0)">Toggle</a></li>
  </ul>
</nav>
</body></html>`

func TestNavExtractor_ExtractNav(t *testing.T) {
	t.Parallel()

	t.Run("builds sections and leaves from nested lists", func(t *testing.T) {
		t.Parallel()

		e := &goquery.NavExtractor{Selector: "nav.menu"}
		contents, err := e.ExtractNav(plainMenu, "https://docs.example.com/manual/en/index.html")
		require.NoError(t, err)

		assert.Equal(t, []string{"intro.html", "models", "getting-help"}, contents.Keys())

		intro := field(t, contents, "intro.html").(docindex.Object)
		assert.Equal(t, docindex.Object{{Key: "title", Value: "Introduction"}}, intro)

		models := field(t, contents, "models").(docindex.Object)
		assert.Equal(t, "Models", field(t, models, "title"))
		children := field(t, models, "contents").(docindex.Object)
		assert.Equal(t, []string{"models/basics.html"}, children.Keys())

		help := field(t, contents, "getting-help").(docindex.Object)
		assert.Equal(t, "Getting Help", field(t, help, "title"))
	})

	t.Run("produces contents that parse", func(t *testing.T) {
		t.Parallel()

		e := &goquery.NavExtractor{Selector: "nav.menu"}
		contents, err := e.ExtractNav(plainMenu, "https://docs.example.com/manual/en/")
		require.NoError(t, err)

		idx, err := docindex.Parse(docindex.Object{
			{Key: "languages", Value: []any{"en"}},
			{Key: "en", Value: docindex.Object{{Key: "contents", Value: contents}}},
		})
		require.NoError(t, err)

		n, ok := idx.Lookup("en", "models/models/basics.html")
		require.True(t, ok)
		assert.Equal(t, "Basics", n.Title())
	})

	t.Run("uses the detected framework menu", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav class="navbar"><ul><li><a href="/docs/blog">Blog</a></li></ul></nav>
<div class="theme-doc-sidebar-container">
  <ul class="theme-doc-sidebar-menu">
    <li><a href="/docs/intro">Intro</a></li>
  </ul>
</div>
</body></html>`

		contents, err := goquery.NewNavExtractor().ExtractNav(html, "https://example.com/docs/")
		require.NoError(t, err)
		assert.Equal(t, []string{"intro"}, contents.Keys())
	})

	t.Run("falls back to the first nav element", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav><ul><li><a href="/">Home</a></li><li><a href="/about.html">About</a></li></ul></nav></body></html>`

		contents, err := goquery.NewNavExtractor().ExtractNav(html, "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"index", "about.html"}, contents.Keys())
	})

	t.Run("returns ENOTFOUND without a menu", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewNavExtractor().ExtractNav(`<html><body><p>no menu</p></body></html>`, "https://example.com/")
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
	})

	t.Run("returns EINVALID for invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewNavExtractor().ExtractNav(plainMenu, "not a url")
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})
}

func field(t *testing.T, obj docindex.Object, key string) any {
	t.Helper()
	v, ok := obj.Get(key)
	require.True(t, ok, "missing field %q", key)
	return v
}
