//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/tanaclip"
	"github.com/fwojciec/tanaclip/goquery"
	"github.com/fwojciec/tanaclip/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Rendered Story</title></head>
<body>
<article id="story"><p>Loading...</p></article>
<script>
document.getElementById('story').innerHTML = '<p>' + 'Rendered by JavaScript in the browser. '.repeat(8) + '</p>';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotContains(t, html, "Loading...")

	clip, err := goquery.NewClipper().Clip(&tanaclip.Source{URL: srv.URL, HTML: html})
	require.NoError(t, err)
	require.Len(t, clip.Blocks, 1)
	assert.Contains(t, clip.Blocks[0], "Rendered by JavaScript")
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, "http://example.com")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_RelaunchesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>page</p></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer fetcher.Close()

	first := fetcher.LauncherPID()
	for range 3 {
		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	assert.NotEqual(t, first, fetcher.LauncherPID())
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
	assert.Zero(t, fetcher.LauncherPID())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")

	assert.Equal(t, tanaclip.EINVALID, tanaclip.ErrorCode(err))
	assert.Contains(t, tanaclip.ErrorMessage(err), "closed")
}
