// Package goquery implements page clipping on top of goquery: metadata
// resolution, article region selection, clutter removal and paragraph
// extraction. All functions read from a parsed document and never mutate
// it; regions are returned as detached clones.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tanaclip"
)

// parseHTML parses markup into a document. The HTML5 parser recovers from
// malformed input, so errors only come from the reader.
func parseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// fragmentContainer parses an HTML fragment into a detached container.
// Returns nil if the fragment is blank.
func fragmentContainer(html string) *goquery.Selection {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := parseHTML(html)
	if err != nil {
		return nil
	}
	return doc.Find("body").First()
}

// firstAttr returns the first non-empty value of attribute name among
// the elements of sel.
func firstAttr(sel *goquery.Selection, name string) string {
	var value string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(name); ok {
			value = strings.TrimSpace(v)
		}
		return value == ""
	})
	return value
}

// firstText returns the first non-empty normalized text among the
// elements of sel.
func firstText(sel *goquery.Selection) string {
	var value string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		value = textOf(s)
		return value == ""
	})
	return value
}

// textOf returns the whitespace-normalized text of sel.
func textOf(sel *goquery.Selection) string {
	return tanaclip.NormalizeWhitespace(sel.Text())
}

// textLength returns the rune count of the normalized text of sel.
func textLength(sel *goquery.Selection) int {
	return utf8.RuneCountInString(textOf(sel))
}
