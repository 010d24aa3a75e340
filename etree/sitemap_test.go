package etree_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/fwojciec/docindex"
	ditree "github.com/fwojciec/docindex/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(title string) docindex.Object {
	return docindex.Object{{Key: "title", Value: title}}
}

func bilingual(t *testing.T) *docindex.Index {
	t.Helper()
	idx, err := docindex.Parse(docindex.Object{
		{Key: "languages", Value: []any{"en", "jp"}},
		{Key: "en", Value: docindex.Object{{Key: "contents", Value: docindex.Object{
			{Key: "guide", Value: docindex.Object{
				{Key: "title", Value: "Guide"},
				{Key: "contents", Value: docindex.Object{
					{Key: "install.wiki", Value: leaf("Install")},
				}},
			}},
			{Key: "faq.wiki", Value: leaf("FAQ")},
		}}}},
		{Key: "jp", Value: docindex.Object{{Key: "contents", Value: docindex.Object{
			{Key: "guide", Value: docindex.Object{
				{Key: "title", Value: "ガイド"},
				{Key: "contents", Value: docindex.Object{
					{Key: "install.wiki", Value: leaf("インストール")},
				}},
			}},
		}}}},
	})
	require.NoError(t, err)
	return idx
}

func TestSitemapWriter_WriteSitemap(t *testing.T) {
	t.Parallel()

	mapper := &docindex.URLMapper{BaseURL: "https://docs.example.com/manual", Extension: ".html"}

	t.Run("lists every leaf with translations as alternates", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, ditree.NewSitemapWriter().WriteSitemap(&buf, bilingual(t), mapper))

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

		root := doc.SelectElement("urlset")
		require.NotNil(t, root)
		assert.Equal(t, ditree.SitemapNS, root.SelectAttrValue("xmlns", ""))

		urls := root.SelectElements("url")
		require.Len(t, urls, 3)

		var locs []string
		for _, u := range urls {
			locs = append(locs, u.SelectElement("loc").Text())
		}
		assert.Equal(t, []string{
			"https://docs.example.com/manual/en/install.html",
			"https://docs.example.com/manual/en/faq.html",
			"https://docs.example.com/manual/jp/install.html",
		}, locs)

		links := urls[0].SelectElements("xhtml:link")
		require.Len(t, links, 2)
		assert.Equal(t, "en", links[0].SelectAttrValue("hreflang", ""))
		assert.Equal(t, "https://docs.example.com/manual/en/install.html", links[0].SelectAttrValue("href", ""))
		assert.Equal(t, "jp", links[1].SelectAttrValue("hreflang", ""))
		assert.Equal(t, "https://docs.example.com/manual/jp/install.html", links[1].SelectAttrValue("href", ""))

		// A page without translations has no alternates.
		assert.Empty(t, urls[1].SelectElements("xhtml:link"))
	})

	t.Run("writes a single line without indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := &ditree.SitemapWriter{}
		require.NoError(t, w.WriteSitemap(&buf, bilingual(t), mapper))

		assert.True(t, strings.HasPrefix(buf.String(), `<?xml version="1.0" encoding="UTF-8"?><urlset`))
		assert.NotContains(t, buf.String(), "\n")
	})

	t.Run("writes an empty urlset for an index without leaves", func(t *testing.T) {
		t.Parallel()

		idx, err := docindex.Parse(docindex.Object{
			{Key: "languages", Value: []any{"en"}},
			{Key: "en", Value: docindex.Object{}},
		})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, ditree.NewSitemapWriter().WriteSitemap(&buf, idx, mapper))
		assert.Contains(t, buf.String(), "<urlset")
		assert.NotContains(t, buf.String(), "<url>")
	})

	t.Run("returns EINVALID for invalid base URL", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := ditree.NewSitemapWriter().WriteSitemap(&buf, bilingual(t), &docindex.URLMapper{BaseURL: "manual"})
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})
}
