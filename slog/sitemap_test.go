package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/tanaclip"
	"github.com/fwojciec/tanaclip/mock"
	clipslog "github.com/fwojciec/tanaclip/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_FindPages(t *testing.T) {
	t.Parallel()

	t.Run("logs site and page count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			FindPagesFn: func(_ context.Context, _ string, filter tanaclip.URLFilter) ([]tanaclip.Page, error) {
				assert.Equal(t, 5, filter.Limit)
				return []tanaclip.Page{{URL: "https://example.com/a"}, {URL: "https://example.com/b"}}, nil
			},
		}

		pages, err := clipslog.NewLoggingSitemapService(inner, logger).
			FindPages(context.Background(), "https://example.com", tanaclip.URLFilter{Limit: 5})

		require.NoError(t, err)
		assert.Len(t, pages, 2)
		output := buf.String()
		assert.Contains(t, output, "find pages")
		assert.Contains(t, output, "site=https://example.com")
		assert.Contains(t, output, "pages=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			FindPagesFn: func(_ context.Context, _ string, _ tanaclip.URLFilter) ([]tanaclip.Page, error) {
				return nil, errors.New("sitemap unreachable")
			},
		}

		_, err := clipslog.NewLoggingSitemapService(inner, logger).
			FindPages(context.Background(), "https://example.com", tanaclip.URLFilter{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="sitemap unreachable"`)
	})
}
