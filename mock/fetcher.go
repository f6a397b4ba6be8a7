package mock

import (
	"context"

	"github.com/fwojciec/tanaclip"
)

var _ tanaclip.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tanaclip.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ tanaclip.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of tanaclip.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ tanaclip.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of tanaclip.SitemapService.
type SitemapService struct {
	FindPagesFn func(ctx context.Context, siteURL string, filter tanaclip.URLFilter) ([]tanaclip.Page, error)
}

func (s *SitemapService) FindPages(ctx context.Context, siteURL string, filter tanaclip.URLFilter) ([]tanaclip.Page, error) {
	return s.FindPagesFn(ctx, siteURL, filter)
}
