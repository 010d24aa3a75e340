// Package rod renders pages in a headless Chrome browser, for sites whose
// navigation menu is built by JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docindex.Fetcher at compile time.
var _ docindex.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves rendered HTML using Chrome browser automation. The
// browser is started on the first Fetch, so a Fetcher that is never used
// never launches (or downloads) Chrome.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout     time.Duration
	renderDelay time.Duration

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	closed   bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the maximum time for one page render.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay waits d after the page has loaded, for menus that are
// filled in asynchronously.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher creates a new Fetcher. Close must be called when the Fetcher
// is no longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.connect()
	if err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}

	if f.renderDelay > 0 {
		select {
		case <-time.After(f.renderDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return page.HTML()
}

// connect returns the running browser, launching it on first use.
func (f *Fetcher) connect() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, fmt.Errorf("fetcher is closed")
	}
	if f.browser != nil {
		return f.browser, nil
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.launcher = l
	f.browser = browser
	return browser, nil
}

// Launched reports whether the browser has been started.
func (f *Fetcher) Launched() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.browser != nil
}

// Close releases browser resources. Close is safe to call multiple times
// and does nothing if the browser was never launched.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
