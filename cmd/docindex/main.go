// Command docindex validates, renders, checks and stores documentation
// indexes.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/check"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/gemini"
	"github.com/fwojciec/docindex/goquery"
	dihttp "github.com/fwojciec/docindex/http"
	"github.com/fwojciec/docindex/rod"
	dislog "github.com/fwojciec/docindex/slog"
	"github.com/fwojciec/docindex/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Application errors were already reported by the command.
		if docindex.ErrorCode(err) == docindex.EINTERNAL {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); the --db flag and
	// DOCINDEX_DB override it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SnapshotService docindex.SnapshotService
	NodeService     docindex.NodeService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docindex"),
		kong.Description("Work with language-partitioned documentation indexes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docindex --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var files, remote docindex.Loader = fs.NewLoader(), dihttp.NewLoader()
	if cli.Verbose {
		files = dislog.NewLoggingLoader(files, deps.Logger)
		remote = dislog.NewLoggingLoader(remote, deps.Logger)
	}
	deps.Files, deps.Remote = files, remote

	switch cmd {
	case "import", "list", "show", "search", "delete":
		if err := m.openDB(cli, deps, stderr); err != nil {
			return err
		}
		defer m.Close()

	case "check":
		if cli.Check.Root != "" {
			deps.Pages = fs.NewPageChecker(cli.Check.Root)
		}
		var prober docindex.Prober = dihttp.NewProber()
		if cli.Verbose {
			prober = dislog.NewLoggingProber(prober, deps.Logger)
		}
		deps.Prober = prober
		deps.Limiter = check.NewHostLimiter(cli.Check.RPS, 1)

	case "scrape":
		var fetcher docindex.Fetcher = dihttp.NewFetcher()
		if cli.Verbose {
			fetcher = dislog.NewLoggingFetcher(fetcher, "http", deps.Logger)
		}
		defer fetcher.Close()
		deps.Fetcher = fetcher

		if !cli.Scrape.NoBrowser {
			// Chrome is only launched if the fallback is taken.
			var browser docindex.Fetcher = rod.NewFetcher(rod.WithRenderDelay(cli.Scrape.RenderDelay))
			if cli.Verbose {
				browser = dislog.NewLoggingFetcher(browser, "browser", deps.Logger)
			}
			defer browser.Close()
			deps.Browser = browser
		}
		deps.Nav = &goquery.NavExtractor{Selector: cli.Scrape.Selector}

	case "translate":
		translator, err := newTranslator(ctx, cli.Translate.APIKey, stderr)
		if err != nil {
			return err
		}
		deps.Translator = translator
	}

	return kongCtx.Run(deps)
}

// openDB opens the snapshot database and wires the SQLite services.
func (m *Main) openDB(cli *CLI, deps *Dependencies, stderr io.Writer) error {
	path := m.DBPath
	if cli.DB != "" {
		path = cli.DB
	}
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCINDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}

	var snapshots docindex.SnapshotService = sqlite.NewSnapshotService(m.DB)
	if cli.Verbose {
		snapshots = dislog.NewLoggingSnapshotService(snapshots, deps.Logger)
	}
	m.SnapshotService = snapshots
	m.NodeService = sqlite.NewNodeService(m.DB)
	deps.Snapshots = m.SnapshotService
	deps.Nodes = m.NodeService
	return nil
}

// newTranslator connects to Gemini and builds a Translator whose prompts
// are bounded with the local tokenizer.
func newTranslator(ctx context.Context, apiKey string, stderr io.Writer) (*gemini.Translator, error) {
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	tokens, err := gemini.NewTokenCounter(gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	return gemini.NewTranslator(gemini.NewClientGenerator(client, gemini.Model), tokens), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docindex.db"
	}
	return filepath.Join(home, ".docindex", "docindex.db")
}
