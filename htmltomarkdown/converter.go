// Package htmltomarkdown converts clip regions to Markdown for the
// markdown export format.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/tanaclip"
)

// Ensure Converter implements tanaclip.Converter at compile time.
var _ tanaclip.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert region HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// NewConverter creates a new Converter. Relative links and images are
// resolved against domain when it is non-empty.
func NewConverter(domain string) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv, domain: domain}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", tanaclip.Errorf(tanaclip.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}
	md, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", tanaclip.Errorf(tanaclip.EINTERNAL, "converting to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
