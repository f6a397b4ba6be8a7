package tanaclip

import (
	"context"
	"regexp"
	"time"
)

// Page is a page listed in a site's sitemap.
type Page struct {
	URL string

	// LastModified is the sitemap's <lastmod> value; zero when absent
	// or unparsable.
	LastModified time.Time
}

// SitemapService finds the pages a site publishes in its sitemaps.
type SitemapService interface {
	// FindPages returns the pages of the site at siteURL that pass filter,
	// most recently modified first. Sitemaps are located via robots.txt
	// with /sitemap.xml as the fallback; sitemap indexes are followed.
	// A site without sitemaps yields no pages and no error.
	FindPages(ctx context.Context, siteURL string, filter URLFilter) ([]Page, error)
}

// URLFilter selects pages for batch clipping.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern, when set.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern.
	Exclude []*regexp.Regexp

	// Since drops pages modified before it. Pages without a known
	// modification time are dropped too.
	Since time.Time

	// Limit caps the number of pages; zero means no limit.
	Limit int
}

// Match reports whether rawURL passes the include and exclude patterns.
func (f URLFilter) Match(rawURL string) bool {
	if len(f.Include) > 0 && !anyMatch(f.Include, rawURL) {
		return false
	}
	return !anyMatch(f.Exclude, rawURL)
}

// Allows reports whether p passes every criterion except Limit.
func (f URLFilter) Allows(p Page) bool {
	if !f.Since.IsZero() && p.LastModified.Before(f.Since) {
		return false
	}
	return f.Match(p.URL)
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
