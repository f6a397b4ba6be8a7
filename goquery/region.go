package goquery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MinRegionTextLength is the cleaned text length a semantic content
// container must exceed to be selected without scoring.
const MinRegionTextLength = 200

// Scoring weights for candidate containers.
const (
	SemanticTagBonus   = 10
	TextLengthDivisor  = 100
	MaxTextLengthBonus = 50
	ParagraphPoints    = 3
	ClassWeight        = 25
	MaxLinkDensity     = 0.5
	LinkDensityPenalty = 50
)

const candidateSelector = "article, section, div, main, td"

// semanticTags earn SemanticTagBonus.
var semanticTags = map[string]bool{"article": true, "section": true, "div": true}

// contentSelectors are tried in order before scoring.
var contentSelectors = []string{
	"article",
	`[role="main"]`,
	"main",
	".post-content",
	".article-content",
	".entry-content",
	".article-body",
	".post-body",
	".story-body",
	"#content",
	".content",
	".post",
	".entry",
}

var (
	unlikelyRe = regexp.MustCompile(`(?i)banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|foot|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)
	maybeRe    = regexp.MustCompile(`(?i)and|article|body|column|content|main|shadow`)
	positiveRe = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)
	negativeRe = regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|foot|footer|footnote|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)
)

// SelectRegion returns a detached, clutter-free copy of the element most
// likely to hold the main article. Semantic containers are tried first;
// otherwise candidates are scored and the best one wins; with no positive
// score the whole body is used. doc is never modified.
func SelectRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		var region *goquery.Selection
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			clean := cleanClone(s)
			if textLength(clean) > MinRegionTextLength {
				region = clean
			}
			return region == nil
		})
		if region != nil {
			return region
		}
	}
	if best := bestCandidate(doc); best != nil {
		return best
	}
	return cleanClone(doc.Find("body"))
}

type scoredCandidate struct {
	sel   *goquery.Selection
	score int
}

// bestCandidate returns a clean copy of the highest scoring candidate that
// still holds text once clutter is removed, or nil when there is none.
// Only candidates scoring above zero are considered. Ties go to the first
// in document order.
func bestCandidate(doc *goquery.Document) *goquery.Selection {
	var candidates []scoredCandidate
	doc.Find(candidateSelector).Each(func(_ int, s *goquery.Selection) {
		if score := scoreCandidate(s); score > 0 {
			candidates = append(candidates, scoredCandidate{sel: s, score: score})
		}
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	for _, c := range candidates {
		if clean := cleanClone(c.sel); textLength(clean) > 0 {
			return clean
		}
	}
	return nil
}

// scoreCandidate rates how likely s is to be the article container.
func scoreCandidate(s *goquery.Selection) int {
	classID := strings.ToLower(s.AttrOr("class", "") + " " + s.AttrOr("id", ""))
	if unlikelyRe.MatchString(classID) && !maybeRe.MatchString(classID) {
		return 0
	}

	score := 0
	if semanticTags[goquery.NodeName(s)] {
		score += SemanticTagBonus
	}

	length := textLength(s)
	score += min(length/TextLengthDivisor, MaxTextLengthBonus)
	score += s.Find("p").Length() * ParagraphPoints

	if positiveRe.MatchString(classID) {
		score += ClassWeight
	}
	if negativeRe.MatchString(classID) {
		score -= ClassWeight
	}
	if linkDensity(s, length) > MaxLinkDensity {
		score -= LinkDensityPenalty
	}
	return score
}

// linkDensity is the share of the text of s that sits inside links.
func linkDensity(s *goquery.Selection, length int) float64 {
	if length == 0 {
		return 0
	}
	linkLength := 0
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkLength += textLength(a)
	})
	return float64(linkLength) / float64(length)
}
