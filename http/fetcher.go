// Package http implements docindex services over HTTP: page fetching for
// nav scraping, remote index loading, and URL probing for link checks.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docindex"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent identifies requests made by docindex.
const DefaultUserAgent = "docindex/1.0"

// Ensure Fetcher implements docindex.Fetcher at compile time.
var _ docindex.Fetcher = (*Fetcher)(nil)

// Client holds the settings shared by the HTTP services.
type Client struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying http.Client. The timeout option
// is ignored when a client is given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func newClient(opts []Option) *Client {
	c := &Client{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, docindex.Errorf(docindex.EINVALID, "invalid URL %q", url)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.client.Do(req)
}

// get returns the body of a successful GET. A 404 or 410 is reported as
// ENOTFOUND; other non-200 statuses as plain errors.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, docindex.Errorf(docindex.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// Fetcher retrieves HTML content from URLs using HTTP requests.
// It does not execute JavaScript, so navigation menus built client-side
// are not visible to it.
type Fetcher struct {
	*Client
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{Client: newClient(opts)}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
