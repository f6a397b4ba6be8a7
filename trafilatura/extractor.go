// Package trafilatura locates article regions with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/tanaclip"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements tanaclip.ContentExtractor at compile time.
var _ tanaclip.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to find the article region of a page.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comments are excluded from the
// region and the readability and dom-distiller fallbacks are enabled.
func NewExtractor(pageURL string) *Extractor {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}
	return &Extractor{opts: opts}
}

// Extract returns the article region, title and author trafilatura finds.
func (e *Extractor) Extract(rawHTML string) (*tanaclip.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, tanaclip.Errorf(tanaclip.EINTERNAL, "trafilatura: %v", err)
	}

	res := &tanaclip.ExtractResult{
		Title:  strings.TrimSpace(result.Metadata.Title),
		Byline: strings.TrimSpace(result.Metadata.Author),
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, tanaclip.Errorf(tanaclip.EINTERNAL, "rendering region: %v", err)
		}
		res.ContentHTML = buf.String()
	}
	return res, nil
}
