package tanaclip

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Date layouts used for output.
const (
	LongDateLayout  = "January 2, 2006"
	DateTokenLayout = "2006-01-02"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	lineBreakRe  = regexp.MustCompile(`[\r\n]+`)
)

// authorSlugMarkers are path segments that precede an author slug in
// profile URLs such as https://example.com/by/jane-doe.
var authorSlugMarkers = map[string]bool{
	"by":      true,
	"author":  true,
	"authors": true,
}

// NormalizeWhitespace NFC-normalizes s, collapses every run of whitespace
// into a single space and trims the result.
func NormalizeWhitespace(s string) string {
	s = norm.NFC.String(s)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Sanitize prepares a free-text value for emission. Tana values cannot
// contain line breaks, so every run of CR/LF characters becomes one space.
func Sanitize(s string) string {
	return strings.TrimSpace(lineBreakRe.ReplaceAllString(s, " "))
}

// IsURL reports whether s looks like a URL rather than a human-readable value.
func IsURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.")
}

// ParseDate parses a date in any common format. Values without a zone are
// interpreted as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatLongDate reformats a date as "January 15, 2024".
// Unparsable input is returned unmodified.
func FormatLongDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(LongDateLayout)
}

// DateToken returns the calendar date of s as "2024-01-15".
// The calendar date is taken in the zone the value was written in.
func DateToken(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(DateTokenLayout), true
}

// NameFromSlug recovers a person's name from an author profile URL.
// The path segment following "by", "author" or "authors" is treated as a
// hyphenated slug: https://site.com/by/jane-doe yields "Jane Doe".
// Returns an empty string when no marker segment is present.
func NameFromSlug(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if !authorSlugMarkers[strings.ToLower(segments[i])] {
			continue
		}
		slug := segments[i+1]
		if slug == "" {
			return ""
		}
		words := strings.FieldsFunc(slug, func(r rune) bool {
			return r == '-' || r == '_' || r == '+'
		})
		caser := cases.Title(language.English)
		for j, w := range words {
			words[j] = caser.String(w)
		}
		return strings.Join(words, " ")
	}
	return ""
}
