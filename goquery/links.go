package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tanaclip"
)

// ExtractLinks returns the same-host links of an index page in document
// order without duplicates. Links in navigation, header, footer and aside
// elements are ignored, as are anchors and non-HTTP schemes.
func ExtractLinks(html, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "invalid base URL: %q", baseURL)
	}
	doc, err := parseHTML(html)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if a.ParentsFiltered("nav, header, footer, aside").Length() > 0 {
			return
		}
		href := a.AttrOr("href", "")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveLink(base, href)
		if resolved == "" || !isSameHost(base, resolved) || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links, nil
}

// resolveLink resolves href against base with the fragment stripped.
// Returns empty for unparsable links and links back to base itself.
func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return ""
	}
	return resolved.String()
}

// isSameHost uses exact host matching; subdomains are different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
