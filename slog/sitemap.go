package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tanaclip"
)

// Ensure LoggingSitemapService implements tanaclip.SitemapService.
var _ tanaclip.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   tanaclip.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next tanaclip.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// FindPages logs the site and the number of pages found.
func (s *LoggingSitemapService) FindPages(ctx context.Context, siteURL string, filter tanaclip.URLFilter) (pages []tanaclip.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find pages",
			"site", siteURL,
			"pages", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPages(ctx, siteURL, filter)
}
