//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docindex/goquery"
	"github.com/fwojciec/docindex/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_RendersScriptMenu(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body><nav id="menu"></nav>
<script>
document.getElementById('menu').innerHTML =
  '<ul><li><a href="/docs/intro.html">Intro</a></li></ul>';
</script>
</body></html>`))
	}))
	defer srv.Close()

	f := rod.NewFetcher()
	defer f.Close()

	html, err := f.Fetch(context.Background(), srv.URL+"/docs/")
	require.NoError(t, err)
	assert.True(t, f.Launched())

	contents, err := goquery.NewNavExtractor().ExtractNav(html, srv.URL+"/docs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"intro.html"}, contents.Keys())
}

func TestFetcher_Fetch_TimesOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`<html><body>late</body></html>`))
	}))
	defer srv.Close()

	f := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}
