package docindex

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// NavExtractor builds the contents of a language from the navigation menu
// of a rendered page.
type NavExtractor interface {
	// ExtractNav parses html and returns the menu found in it as a
	// contents mapping. Links are resolved against baseURL; keys are link
	// paths relative to it.
	ExtractNav(html string, baseURL string) (Object, error)
}

// Framework identifies the documentation generator that produced a page.
type Framework string

// Known documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)
