package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tanaclip"
)

// articleTypes are the schema.org types accepted as article descriptions.
var articleTypes = map[string]bool{
	"Article":     true,
	"NewsArticle": true,
	"BlogPosting": true,
}

// structuredData is the article object found in a page's JSON-LD blocks.
type structuredData map[string]any

// findStructuredData scans every JSON-LD block on the page and returns the
// first article object. Blocks with a @graph are searched entry by entry;
// other blocks are accepted when their own type matches. Invalid blocks
// are skipped. Returns nil when nothing matches.
func findStructuredData(doc *goquery.Document) structuredData {
	var found structuredData
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		found = articleObject(data)
		return found == nil
	})
	return found
}

func articleObject(data any) structuredData {
	switch v := data.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			for _, entry := range graph {
				if m, ok := entry.(map[string]any); ok && isArticleType(m["@type"]) {
					return m
				}
			}
			return nil
		}
		if isArticleType(v["@type"]) {
			return v
		}
	case []any:
		for _, entry := range v {
			if m := articleObject(entry); m != nil {
				return m
			}
		}
	}
	return nil
}

// isArticleType accepts a @type given as a string or a list of strings.
func isArticleType(t any) bool {
	switch v := t.(type) {
	case string:
		return articleTypes[v]
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && articleTypes[s] {
				return true
			}
		}
	}
	return false
}

// String returns a string property of the article.
func (d structuredData) String(key string) string {
	if d == nil {
		return ""
	}
	s, _ := d[key].(string)
	return strings.TrimSpace(s)
}

// Name returns a property given either as a string or as an object with
// a name, such as the publisher.
func (d structuredData) Name(key string) string {
	if d == nil {
		return ""
	}
	return entityName(d[key])
}

// Authors returns the author names of the article, skipping URL-shaped
// values. The author property may be a string, an object with a name, or
// an array of either.
func (d structuredData) Authors() []string {
	if d == nil {
		return nil
	}
	var names []string
	add := func(v any) {
		name := entityName(v)
		if name != "" && !tanaclip.IsURL(name) {
			names = append(names, name)
		}
	}
	switch v := d["author"].(type) {
	case []any:
		for _, e := range v {
			add(e)
		}
	default:
		add(v)
	}
	return names
}

func entityName(v any) string {
	switch e := v.(type) {
	case string:
		return strings.TrimSpace(e)
	case map[string]any:
		name, _ := e["name"].(string)
		return strings.TrimSpace(name)
	}
	return ""
}
