package tanaclip

import (
	"regexp"
	"strings"
)

// connectiveRe matches the " and " / "&" connectives joining author names.
var connectiveRe = regexp.MustCompile(`(?i)\s+and\s+|\s*&\s*`)

// ParseAuthors splits a free-text author string into individual names.
// "Jane Doe, John Smith and Alex Lee" yields three names.
// Returns an empty slice for blank input; callers fall back to treating
// the original string as a single value.
func ParseAuthors(text string) []string {
	text = connectiveRe.ReplaceAllString(text, ", ")

	names := []string{}
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
