package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tanaclip"
)

// probe reads one candidate value from a document. Empty means absent.
type probe func(doc *goquery.Document) string

// firstOf returns the first non-empty probe result.
func firstOf(doc *goquery.Document, probes []probe) string {
	for _, p := range probes {
		if v := strings.TrimSpace(p(doc)); v != "" {
			return v
		}
	}
	return ""
}

func metaProbe(selector string) probe {
	return func(doc *goquery.Document) string {
		return firstAttr(doc.Find(selector), "content")
	}
}

func attrProbe(selector, name string) probe {
	return func(doc *goquery.Document) string {
		return firstAttr(doc.Find(selector), name)
	}
}

func textProbe(selector string) probe {
	return func(doc *goquery.Document) string {
		return firstText(doc.Find(selector).First())
	}
}

// notURL drops URL-shaped results of p.
func notURL(p probe) probe {
	return func(doc *goquery.Document) string {
		if v := p(doc); !tanaclip.IsURL(v) {
			return v
		}
		return ""
	}
}

func constProbe(v string) probe {
	return func(*goquery.Document) string { return v }
}

// bylineSelectors locate visible author bylines.
var bylineSelectors = []string{
	`[rel="author"]`,
	".author-name",
	".byline__name",
	".byline",
	".author",
	`[itemprop="author"]`,
	".post-author",
	".article-author",
}

// maxBylineLength bounds byline text so author bio boxes are not taken.
const maxBylineLength = 100

var bylinePrefixRe = regexp.MustCompile(`(?i)^by\s+`)

// ResolveMetadata extracts page metadata from doc. Each field is resolved
// from an ordered chain of sources; the first non-empty value wins. Missing
// fields are left empty. pageURL is used to resolve relative canonical links
// and as the last resort for the publication name and URL.
func ResolveMetadata(doc *goquery.Document, pageURL string) tanaclip.PageMetadata {
	ld := findStructuredData(doc)
	return tanaclip.PageMetadata{
		Title:         tanaclip.NormalizeWhitespace(firstOf(doc, titleProbes)),
		Author:        tanaclip.NormalizeWhitespace(firstOf(doc, authorProbes(ld))),
		Publication:   tanaclip.NormalizeWhitespace(firstOf(doc, publicationProbes(ld, pageURL))),
		PublishedDate: tanaclip.FormatLongDate(firstOf(doc, dateProbes(ld))),
		URL:           firstOf(doc, canonicalProbes(pageURL)),
		Description:   tanaclip.NormalizeWhitespace(firstOf(doc, descriptionProbes)),
	}
}

var titleProbes = []probe{
	metaProbe(`meta[property="og:title"]`),
	metaProbe(`meta[name="twitter:title"], meta[property="twitter:title"]`),
	textProbe("h1"),
	textProbe("title"),
}

func authorProbes(ld structuredData) []probe {
	return []probe{
		func(*goquery.Document) string { return strings.Join(ld.Authors(), ", ") },
		notURL(metaProbe(`meta[name="author"]`)),
		articleAuthor,
		metaProbe(`meta[name="twitter:creator"]`),
		domByline,
	}
}

// articleAuthor reads article:author, which is often a profile URL. URLs
// are turned into a name from their slug.
func articleAuthor(doc *goquery.Document) string {
	v := firstAttr(doc.Find(`meta[property="article:author"]`), "content")
	if tanaclip.IsURL(v) {
		return tanaclip.NameFromSlug(v)
	}
	return v
}

func domByline(doc *goquery.Document) string {
	for _, selector := range bylineSelectors {
		var byline string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := bylinePrefixRe.ReplaceAllString(textOf(s), "")
			if text != "" && len([]rune(text)) <= maxBylineLength {
				byline = text
			}
			return byline == ""
		})
		if byline != "" {
			return byline
		}
	}
	return ""
}

func publicationProbes(ld structuredData, pageURL string) []probe {
	return []probe{
		metaProbe(`meta[property="og:site_name"]`),
		func(*goquery.Document) string { return ld.Name("publisher") },
		metaProbe(`meta[name="application-name"]`),
		constProbe(hostname(pageURL)),
	}
}

// hostname returns the host of rawURL without a leading "www.".
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func dateProbes(ld structuredData) []probe {
	return []probe{
		metaProbe(`meta[property="article:published_time"]`),
		metaProbe(`meta[name="publish-date"]`),
		metaProbe(`meta[name="date"]`),
		attrProbe("time[datetime]", "datetime"),
		func(*goquery.Document) string { return ld.String("datePublished") },
		func(*goquery.Document) string { return ld.String("dateCreated") },
		attrProbe(`[itemprop="datePublished"]`, "content"),
		attrProbe(`[itemprop="datePublished"]`, "datetime"),
	}
}

func canonicalProbes(pageURL string) []probe {
	return []probe{
		func(doc *goquery.Document) string {
			return resolveURL(pageURL, firstAttr(doc.Find(`link[rel="canonical"]`), "href"))
		},
		metaProbe(`meta[property="og:url"]`),
		constProbe(pageURL),
	}
}

// resolveURL resolves href against base. Unresolvable input yields href
// unchanged.
func resolveURL(base, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	b, err := url.Parse(base)
	if err != nil || base == "" {
		return href
	}
	return b.ResolveReference(ref).String()
}

var descriptionProbes = []probe{
	metaProbe(`meta[property="og:description"]`),
	metaProbe(`meta[name="description"]`),
	metaProbe(`meta[name="twitter:description"], meta[property="twitter:description"]`),
}
