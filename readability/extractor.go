// Package readability locates article regions with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/tanaclip"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements tanaclip.ContentExtractor at compile time.
var _ tanaclip.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to find the article region of a page.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor. pageURL, when parseable, lets
// readability resolve relative links in the region.
func NewExtractor(pageURL string) *Extractor {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		u = nil
	}
	return &Extractor{pageURL: u}
}

// Extract returns the article region, title and byline readability finds.
func (e *Extractor) Extract(rawHTML string) (*tanaclip.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, tanaclip.Errorf(tanaclip.EINTERNAL, "readability: %v", err)
	}

	return &tanaclip.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		Byline:      strings.TrimSpace(article.Byline),
		ContentHTML: article.Content,
	}, nil
}
