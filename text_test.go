package tanaclip_test

import (
	"testing"

	"github.com/fwojciec/tanaclip"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", tanaclip.NormalizeWhitespace("  a \n\t b   c  "))
	assert.Empty(t, tanaclip.NormalizeWhitespace(" \n\t "))
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("collapses line breaks into one space", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "first line second line", tanaclip.Sanitize("first line\r\n\r\nsecond line"))
	})

	t.Run("keeps inner spacing and trims", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a  b", tanaclip.Sanitize("\n a  b \n"))
	})
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	assert.True(t, tanaclip.IsURL("https://example.com/a"))
	assert.True(t, tanaclip.IsURL("HTTP://example.com"))
	assert.True(t, tanaclip.IsURL("www.example.com"))
	assert.False(t, tanaclip.IsURL("Jane Doe"))
	assert.False(t, tanaclip.IsURL("@janedoe"))
}

func TestFormatLongDate(t *testing.T) {
	t.Parallel()

	t.Run("formats ISO date", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "January 15, 2024", tanaclip.FormatLongDate("2024-01-15"))
	})

	t.Run("formats ISO timestamp in its own zone", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "January 15, 2024", tanaclip.FormatLongDate("2024-01-15T23:30:00-05:00"))
	})

	t.Run("returns raw string when unparsable", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "sometime last week", tanaclip.FormatLongDate("sometime last week"))
	})
}

func TestDateToken(t *testing.T) {
	t.Parallel()

	t.Run("normalizes ISO date", func(t *testing.T) {
		t.Parallel()

		token, ok := tanaclip.DateToken("2024-01-15T10:00:00Z")
		assert.True(t, ok)
		assert.Equal(t, "2024-01-15", token)
	})

	t.Run("accepts long date", func(t *testing.T) {
		t.Parallel()

		token, ok := tanaclip.DateToken("January 15, 2024")
		assert.True(t, ok)
		assert.Equal(t, "2024-01-15", token)
	})

	t.Run("rejects invalid date", func(t *testing.T) {
		t.Parallel()

		_, ok := tanaclip.DateToken("not a date")
		assert.False(t, ok)
	})

	t.Run("rejects empty string", func(t *testing.T) {
		t.Parallel()

		_, ok := tanaclip.DateToken("  ")
		assert.False(t, ok)
	})
}

func TestNameFromSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"by marker", "https://site.com/by/jane-doe", "Jane Doe"},
		{"author marker with trailing slash", "https://site.com/author/john-smith/", "John Smith"},
		{"authors marker nested", "https://site.com/people/authors/alex-lee/posts", "Alex Lee"},
		{"no marker", "https://site.com/jane-doe", ""},
		{"marker without slug", "https://site.com/by/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tanaclip.NameFromSlug(tt.url))
		})
	}
}
