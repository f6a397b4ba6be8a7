package batch_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/fwojciec/tanaclip"
	"github.com/fwojciec/tanaclip/batch"
	"github.com/fwojciec/tanaclip/goquery"
	"github.com/fwojciec/tanaclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexPage = `<html><body>
<nav><a href="/blog/about">About</a></nav>
<main>
  <a href="/blog/first-post">First</a>
  <a href="/blog/second-post#intro">Second</a>
  <a href="/shop/cart">Cart</a>
  <a href="https://other.com/blog/x">Elsewhere</a>
  <a href="/blog/tag/go">Tag</a>
</main>
</body></html>`

func TestRunner_Discover(t *testing.T) {
	t.Parallel()

	newRunner := func() *batch.Runner {
		return &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return indexPage, nil
				},
			},
			RetryDelays: []time.Duration{0},
		}
	}

	t.Run("returns links under the index path", func(t *testing.T) {
		t.Parallel()

		urls, err := newRunner().Discover(context.Background(), "https://example.com/blog/", goquery.ExtractLinks, tanaclip.URLFilter{})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/blog/first-post",
			"https://example.com/blog/second-post",
			"https://example.com/blog/tag/go",
		}, urls)
	})

	t.Run("stops at the limit", func(t *testing.T) {
		t.Parallel()

		urls, err := newRunner().Discover(context.Background(), "https://example.com/blog/", goquery.ExtractLinks, tanaclip.URLFilter{Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/blog/first-post"}, urls)
	})

	t.Run("applies include and exclude patterns", func(t *testing.T) {
		t.Parallel()

		filter := tanaclip.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/blog/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/tag/`)},
		}
		urls, err := newRunner().Discover(context.Background(), "https://example.com/blog/", goquery.ExtractLinks, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/blog/first-post",
			"https://example.com/blog/second-post",
		}, urls)
	})

	t.Run("returns fetch error", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", context.DeadlineExceeded
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := r.Discover(context.Background(), "https://example.com/", goquery.ExtractLinks, tanaclip.URLFilter{})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
