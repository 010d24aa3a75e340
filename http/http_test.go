package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docindex"
	dihttp "github.com/fwojciec/docindex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := dihttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		agents := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.UserAgent()
		}))
		defer server.Close()

		fetcher := dihttp.NewFetcher(dihttp.WithUserAgent("test-agent"))
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", <-agents)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := dihttp.NewFetcher(dihttp.WithTimeout(10 * time.Millisecond))
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := dihttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns ENOTFOUND for 404", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := dihttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("returns error for server errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := dihttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, docindex.EINTERNAL, docindex.ErrorCode(err))
		assert.Contains(t, err.Error(), "500")
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"languages":["en"]}`))
		}))
		defer server.Close()

		loader := dihttp.NewLoader()
		loader.RetryDelays = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}

		var retries []int
		loader.OnRetry = func(attempt int, err error) {
			retries = append(retries, attempt)
		}

		data, err := loader.Load(context.Background(), server.URL+"/index.json")
		require.NoError(t, err)
		assert.Equal(t, `{"languages":["en"]}`, string(data))
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, []int{2, 3}, retries)
	})

	t.Run("does not retry missing resources", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.NotFound(w, r)
		}))
		defer server.Close()

		loader := dihttp.NewLoader()
		loader.RetryDelays = []time.Duration{time.Millisecond}

		_, err := loader.Load(context.Background(), server.URL+"/index.json")
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestProber_Probe(t *testing.T) {
	t.Parallel()

	t.Run("uses HEAD", func(t *testing.T) {
		t.Parallel()

		var methods recorder
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods.add(r.Method)
		}))
		defer server.Close()

		status, err := dihttp.NewProber().Probe(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{http.MethodHead}, methods.values())
	})

	t.Run("falls back to GET when HEAD is not allowed", func(t *testing.T) {
		t.Parallel()

		var methods recorder
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods.add(r.Method)
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		status, err := dihttp.NewProber().Probe(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{http.MethodHead, http.MethodGet}, methods.values())
	})

	t.Run("reports status without error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		status, err := dihttp.NewProber().Probe(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("returns transport errors", func(t *testing.T) {
		t.Parallel()

		prober := dihttp.NewProber(dihttp.WithTimeout(100 * time.Millisecond))
		_, err := prober.Probe(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
	})
}

// recorder collects values seen by a test server handler.
type recorder struct {
	mu   sync.Mutex
	vals []string
}

func (r *recorder) add(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vals = append(r.vals, v)
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.vals...)
}
