package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Files loads local index files, Remote loads http(s) URLs.
	Files  docindex.Loader
	Remote docindex.Loader

	Snapshots docindex.SnapshotService
	Nodes     docindex.NodeService

	// Fetcher fetches server HTML. Browser, when set, renders pages whose
	// menu is missing from the server HTML.
	Fetcher docindex.Fetcher
	Browser docindex.Fetcher

	Nav        docindex.NavExtractor
	Pages      docindex.PageChecker
	Prober     docindex.Prober
	Limiter    docindex.DomainLimiter
	Translator docindex.Translator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log operations to stderr"`
	DB      string `name:"db" env:"DOCINDEX_DB" placeholder:"PATH" help:"Snapshot database path (default ~/.docindex/docindex.db)"`

	Validate  ValidateCmd  `cmd:"" help:"Validate an index file"`
	Tree      TreeCmd      `cmd:"" help:"Print the tree of an index"`
	Lookup    LookupCmd    `cmd:"" help:"Look up an entry by path"`
	Format    FormatCmd    `cmd:"" help:"Re-encode an index in canonical form"`
	Render    RenderCmd    `cmd:"" help:"Render the menu of a language as markdown or HTML"`
	Sitemap   SitemapCmd   `cmd:"" help:"Write an XML sitemap of the published pages"`
	Check     CheckCmd     `cmd:"" help:"Check page files and published links"`
	Scrape    ScrapeCmd    `cmd:"" help:"Build an index from a site's navigation menu"`
	Translate TranslateCmd `cmd:"" help:"Add a language by translating titles with Gemini"`
	Import    ImportCmd    `cmd:"" help:"Store an index as a named snapshot"`
	List      ListCmd      `cmd:"" help:"List stored snapshots"`
	Show      ShowCmd      `cmd:"" help:"Print the latest snapshot of a name"`
	Search    SearchCmd    `cmd:"" help:"Search the titles of a snapshot"`
	Delete    DeleteCmd    `cmd:"" help:"Delete all snapshots of a name"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	File string `arg:"" help:"Index file or URL (.json, .yaml)"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct {
	File string `arg:"" help:"Index file or URL"`
	Lang string `arg:"" optional:"" help:"Language code (default all)"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	File string `arg:"" help:"Index file or URL"`
	Lang string `arg:"" help:"Language code"`
	Path string `arg:"" help:"Entry path, e.g. 00_quickstart/00_quickstart/blog.wiki"`
}

// FormatCmd is the "format" subcommand.
type FormatCmd struct {
	File   string `arg:"" help:"Index file or URL"`
	Output string `short:"o" help:"Write to file instead of stdout"`
	To     string `help:"Output format: json or yaml (default from output extension, else json)"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	File       string `arg:"" help:"Index file or URL"`
	Lang       string `arg:"" help:"Language code"`
	HTML       bool   `name:"html" help:"Render HTML instead of markdown"`
	Standalone bool   `help:"Wrap HTML output in a complete document"`
	BaseURL    string `name:"base-url" help:"Link leaves to pages under this URL"`
	Ext        string `default:".html" help:"Extension of published pages"`
	Depth      int    `help:"Maximum levels to render (0 for all)"`
	Output     string `short:"o" help:"Write to file instead of stdout"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	File    string `arg:"" help:"Index file or URL"`
	BaseURL string `name:"base-url" required:"" help:"URL the manual is published under"`
	Ext     string `default:".html" help:"Extension of published pages"`
	Output  string `short:"o" help:"Write to file instead of stdout"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	File        string  `arg:"" help:"Index file or URL"`
	Lang        string  `help:"Only check this language"`
	Root        string  `help:"Page directory laid out as <root>/<lang>/<key>"`
	BaseURL     string  `name:"base-url" help:"Probe published pages under this URL"`
	Ext         string  `default:".html" help:"Extension of published pages"`
	Concurrency int     `short:"c" default:"10" help:"Concurrent probe limit"`
	RPS         float64 `name:"rps" default:"5" help:"Requests per second per host (0 for unlimited)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string        `arg:"" help:"Page whose navigation menu is scraped"`
	Lang        string        `required:"" help:"Language code of the scraped menu"`
	Selector    string        `help:"CSS selector of the menu (default detected)"`
	NoBrowser   bool          `name:"no-browser" help:"Do not render the page in headless Chrome when the menu is missing"`
	RenderDelay time.Duration `name:"render-delay" help:"Wait this long after the browser loads the page (e.g. 2s)"`
	Title       string        `help:"Language title"`
	Output      string        `short:"o" help:"Write to file instead of stdout"`
}

// TranslateCmd is the "translate" subcommand.
type TranslateCmd struct {
	File   string `arg:"" help:"Index file or URL"`
	From   string `arg:"" help:"Source language code"`
	To     string `arg:"" help:"Target language code"`
	APIKey string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Output string `short:"o" help:"Write to file instead of stdout"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name string `arg:"" help:"Snapshot name"`
	File string `arg:"" help:"Index file or URL"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Name string `help:"Only list snapshots of this name"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Snapshot name"`
	Lang string `arg:"" optional:"" help:"Language code (default all)"`
	Raw  bool   `help:"Print the stored index as JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Name  string `arg:"" help:"Snapshot name"`
	Query string `arg:"" help:"Text contained in titles"`
	Lang  string `help:"Only search this language"`
	Kind  string `help:"Only return this kind: leaf or section"`
	Limit int    `default:"50" help:"Maximum results"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Snapshot name"`
	Force bool   `help:"Confirm deletion"`
}
