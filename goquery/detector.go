package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
)

// framework describes how to recognize a documentation generator and
// where it renders its sidebar menu.
type framework struct {
	name      docindex.Framework
	generator string
	markers   []string
	menu      string
}

// frameworks are checked in order. VitePress precedes VuePress because
// its pages may carry VuePress markers too.
var frameworks = []framework{
	{
		name:      docindex.FrameworkDocusaurus,
		generator: "docusaurus",
		markers:   []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container"},
		menu:      ".theme-doc-sidebar-menu",
	},
	{
		name:      docindex.FrameworkMkDocs,
		generator: "mkdocs",
		markers:   []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"},
		menu:      ".md-nav--primary > .md-nav__list",
	},
	{
		name:      docindex.FrameworkSphinx,
		generator: "sphinx",
		markers:   []string{".wy-menu-vertical", ".sphinxsidebar", ".toctree-wrapper"},
		menu:      ".wy-menu-vertical, .sphinxsidebarwrapper",
	},
	{
		name:      docindex.FrameworkVitePress,
		generator: "vitepress",
		markers:   []string{"#VPContent", ".VPSidebar"},
		menu:      ".VPSidebar nav",
	},
	{
		name:      docindex.FrameworkVuePress,
		generator: "vuepress",
		markers:   []string{".theme-default-content", ".sidebar-links"},
		menu:      ".sidebar-links",
	},
	{
		name:      docindex.FrameworkGitBook,
		generator: "gitbook",
		markers:   []string{"[data-testid='space.sidebar']"},
		menu:      "[data-testid='space.sidebar']",
	},
	{
		name:      docindex.FrameworkNextra,
		generator: "nextra",
		markers:   []string{".nextra-sidebar", ".nextra-sidebar-container"},
		menu:      ".nextra-sidebar, .nextra-sidebar-container",
	},
}

// Detector identifies documentation frameworks from HTML content using
// the meta generator tag and framework-specific markup.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the framework that generated html, or FrameworkUnknown.
func (d *Detector) Detect(html string) docindex.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return docindex.FrameworkUnknown
	}
	if f, ok := detect(doc); ok {
		return f.name
	}
	return docindex.FrameworkUnknown
}

func detect(doc *goquery.Document) (framework, bool) {
	// The generator tag is the most reliable signal when present.
	generator := strings.ToLower(doc.Find("meta[name='generator']").AttrOr("content", ""))
	if generator != "" {
		for _, f := range frameworks {
			if strings.Contains(generator, f.generator) {
				return f, true
			}
		}
	}

	for _, f := range frameworks {
		for _, marker := range f.markers {
			if doc.Find(marker).Length() > 0 {
				return f, true
			}
		}
	}
	return framework{}, false
}
