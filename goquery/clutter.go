package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// clutterElements are removed from a region before its text is used.
var clutterElements = []string{
	"nav", "header", "footer", "aside",
	"script", "style", "noscript", "template", "iframe", "svg", "canvas",
	"form", "button", "input", "select", "textarea", "dialog",
	`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`,
	`[role="complementary"]`, `[role="dialog"]`, `[role="alert"]`,
	`[aria-hidden="true"]`, "[hidden]",
	`[style*="display:none"]`, `[style*="display: none"]`,
	`[style*="visibility:hidden"]`, `[style*="visibility: hidden"]`,
}

// clutterPatterns match class and id substrings of boilerplate blocks.
var clutterPatterns = []string{
	"advert", "sponsor", "promo",
	"banner", "cookie", "consent", "gdpr", "newsletter", "subscribe", "signup",
	"paywall", "popup", "modal", "overlay",
	"share-", "sharing", "social", "follow-us",
	"comment", "disqus", "related", "recommend", "more-stories", "read-more", "trending",
	"sidebar", "widget", "breadcrumb", "pagination", "pager",
	"menu", "navbar", "masthead", "toolbar", "skip-link",
	"footer", "copyright", "print-only",
}

// clutterSelector is the union of every clutter rule, compiled once by
// goquery per call.
var clutterSelector = buildClutterSelector()

func buildClutterSelector() string {
	parts := append([]string{}, clutterElements...)
	for _, p := range clutterPatterns {
		parts = append(parts, fmt.Sprintf(`[class*=%q]`, p), fmt.Sprintf(`[id*=%q]`, p))
	}
	return strings.Join(parts, ", ")
}

// adTokenRe matches "ad" or "ads" as a whole class or id token, so
// "top-ad" and "ads_slot" match while "threads-list" and "heads-up" do not.
var adTokenRe = regexp.MustCompile(`(?i)(^|[\s_-])ads?([\s_-]|$)`)

// removeClutter removes every clutter descendant of sel in place.
func removeClutter(sel *goquery.Selection) {
	sel.Find(clutterSelector).Remove()
	sel.Find("[class], [id]").FilterFunction(isAdBlock).Remove()
}

func isAdBlock(_ int, s *goquery.Selection) bool {
	return adTokenRe.MatchString(s.AttrOr("class", "")) || adTokenRe.MatchString(s.AttrOr("id", ""))
}

// cleanClone returns a detached copy of sel with clutter removed. The
// document sel belongs to is left untouched.
func cleanClone(sel *goquery.Selection) *goquery.Selection {
	clone := sel.First().Clone()
	removeClutter(clone)
	return clone
}
