package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tanaclip"
)

// Ensure Clipper implements tanaclip.Clipper.
var _ tanaclip.Clipper = (*Clipper)(nil)

// Clipper extracts metadata and content blocks from page snapshots. By
// default the article region is chosen by scoring; an engine may be set
// to locate the region instead, with scoring as the fallback.
type Clipper struct {
	engine tanaclip.ContentExtractor
}

// Option configures a Clipper.
type Option func(*Clipper)

// WithEngine locates the article region with e. Whenever e fails or finds
// no content the built-in scoring is used.
func WithEngine(e tanaclip.ContentExtractor) Option {
	return func(c *Clipper) {
		c.engine = e
	}
}

// NewClipper creates a Clipper.
func NewClipper(opts ...Option) *Clipper {
	c := &Clipper{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clip implements tanaclip.Clipper.
func (c *Clipper) Clip(src *tanaclip.Source) (*tanaclip.Clip, error) {
	if src == nil {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "source required")
	}
	doc, err := parseHTML(src.HTML)
	if err != nil {
		return nil, err
	}

	meta := ResolveMetadata(doc, src.URL)
	content, byline := c.content(doc, src)
	if meta.Author == "" && byline != "" {
		meta.Author = tanaclip.NormalizeWhitespace(byline)
	}

	return &tanaclip.Clip{
		Title:       meta.Title,
		Metadata:    meta,
		Blocks:      content.Blocks,
		ContentHTML: content.HTML,
		IsSelection: content.IsSelection,
	}, nil
}

// content returns the page content and any byline found by the engine.
func (c *Clipper) content(doc *goquery.Document, src *tanaclip.Source) (Content, string) {
	if c.engine == nil || fragmentContainer(src.Selection) != nil {
		return SelectContent(doc, src.Selection), ""
	}

	res, err := c.engine.Extract(src.HTML)
	if err != nil || res == nil {
		return SelectContent(doc, ""), ""
	}
	if region := fragmentContainer(res.ContentHTML); region != nil {
		if blocks := extractFrom(region); len(blocks) > 0 {
			return Content{Blocks: blocks, HTML: res.ContentHTML}, res.Byline
		}
	}
	return SelectContent(doc, ""), res.Byline
}
