package goquery_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// prose returns a sentence repeated n times.
func prose(sentence string, n int) string {
	return strings.TrimSpace(strings.Repeat(sentence+" ", n))
}
