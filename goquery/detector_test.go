package goquery_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want docindex.Framework
	}{
		{
			name: "meta generator tag",
			html: `<html><head><meta name="generator" content="Sphinx 7.2.6"></head><body></body></html>`,
			want: docindex.FrameworkSphinx,
		},
		{
			name: "docusaurus sidebar container",
			html: `<html><body><div class="theme-doc-sidebar-container"></div></body></html>`,
			want: docindex.FrameworkDocusaurus,
		},
		{
			name: "mkdocs material attributes",
			html: `<html><body data-md-color-scheme="default"></body></html>`,
			want: docindex.FrameworkMkDocs,
		},
		{
			name: "readthedocs theme menu",
			html: `<html><body><div class="wy-menu-vertical"></div></body></html>`,
			want: docindex.FrameworkSphinx,
		},
		{
			name: "vitepress before vuepress",
			html: `<html><body><div id="VPContent"><div class="sidebar-links"></div></div></body></html>`,
			want: docindex.FrameworkVitePress,
		},
		{
			name: "vuepress sidebar links",
			html: `<html><body><ul class="sidebar-links"></ul></body></html>`,
			want: docindex.FrameworkVuePress,
		},
		{
			name: "gitbook sidebar",
			html: `<html><body><aside data-testid="space.sidebar"></aside></body></html>`,
			want: docindex.FrameworkGitBook,
		},
		{
			name: "nextra sidebar",
			html: `<html><body><aside class="nextra-sidebar"></aside></body></html>`,
			want: docindex.FrameworkNextra,
		},
		{
			name: "plain page",
			html: `<html><body><nav><ul><li><a href="/a">A</a></li></ul></nav></body></html>`,
			want: docindex.FrameworkUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.NewDetector().Detect(tt.html))
		})
	}
}
