package tanaclip

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultMaxChunkLength is the longest single value Tana accepts, with
// headroom for markup added around the value.
const DefaultMaxChunkLength = 4500

var excessNewlinesRe = regexp.MustCompile(`\n{3,}`)

// sentenceEnds are the punctuation+space pairs treated as sentence breaks.
var sentenceEnds = []string{". ", "! ", "? "}

// ChunkText splits text into chunks of at most maxLength runes, breaking at
// the most natural boundary available before the limit: a paragraph break
// or line break past half the limit, the end of a sentence, a space, or
// finally a hard cut. Chunks are trimmed and never empty. A maxLength below
// one is treated as one.
func ChunkText(text string, maxLength int) []string {
	if maxLength < 1 {
		maxLength = 1
	}

	chunks := []string{}
	remaining := trimLeftRunes([]rune(text))

	for len(remaining) > maxLength {
		cut := breakPoint(remaining, maxLength)
		if chunk := tidyChunk(string(remaining[:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		remaining = trimLeftRunes(remaining[cut:])
	}

	if chunk := tidyChunk(string(remaining)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// breakPoint returns the index in text where the next chunk ends.
// The result is always in [1, maxLength].
func breakPoint(text []rune, maxLength int) int {
	window := text[:maxLength]

	// Line breaks early in the window would leave a tiny leading chunk.
	if i := lastIndexRunes(window, "\n\n"); i > maxLength/2 {
		return i
	}
	if i := lastIndexRunes(window, "\n"); i > maxLength/2 {
		return i
	}

	sentence := -1
	for _, end := range sentenceEnds {
		if i := lastIndexRunes(window, end); i > sentence {
			sentence = i
		}
	}
	if sentence >= 0 {
		return sentence + 2
	}

	if i := lastIndexRunes(window, " "); i > 0 {
		return i
	}
	return maxLength
}

// tidyChunk trims a chunk and collapses runs of blank lines.
func tidyChunk(s string) string {
	return strings.TrimSpace(excessNewlinesRe.ReplaceAllString(s, "\n\n"))
}

func trimLeftRunes(rs []rune) []rune {
	for len(rs) > 0 && unicode.IsSpace(rs[0]) {
		rs = rs[1:]
	}
	return rs
}

// lastIndexRunes is strings.LastIndex over a rune slice, returning a rune index.
func lastIndexRunes(rs []rune, sep string) int {
	pattern := []rune(sep)
	for i := len(rs) - len(pattern); i >= 0; i-- {
		match := true
		for j, r := range pattern {
			if rs[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
