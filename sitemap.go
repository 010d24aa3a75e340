package docindex

import (
	"io"
	"net/url"
	"path"
	"strings"
)

// URLMapper maps leaf pages to the URLs they are published at:
// <BaseURL>/<lang>/<key>, with the key's file extension replaced by
// Extension (dropped when Extension is empty).
type URLMapper struct {
	BaseURL   string
	Extension string
}

// URL returns the published URL of the leaf keyed key in language lang.
func (m *URLMapper) URL(lang, key string) (string, error) {
	base, err := url.Parse(m.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", Errorf(EINVALID, "invalid base URL %q", m.BaseURL)
	}

	page := strings.TrimSuffix(key, path.Ext(key)) + m.Extension
	return base.JoinPath(lang, page).String(), nil
}

// SitemapWriter writes the published pages of an index as a sitemap.
type SitemapWriter interface {
	WriteSitemap(w io.Writer, idx *Index, mapper *URLMapper) error
}
