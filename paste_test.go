package tanaclip_test

import (
	"testing"

	"github.com/fwojciec/tanaclip"
	"github.com/stretchr/testify/assert"
)

func TestRenderPaste(t *testing.T) {
	t.Parallel()

	t.Run("renders full clip", func(t *testing.T) {
		t.Parallel()

		root := tanaclip.Format(tanaclip.FormatInput{
			Title:  "T",
			Blocks: []string{"First paragraph of the article.", "Second paragraph of the article."},
			Metadata: tanaclip.PageMetadata{
				Author:        "A and B",
				URL:           "https://x/y",
				PublishedDate: "2024-01-15",
				Publication:   "Pub",
			},
			Tag:    "article",
			Fields: allFields(),
		})

		want := "%%tana%%\n" +
			"- T #article\n" +
			"  - Author::\n" +
			"    - A\n" +
			"    - B\n" +
			"  - URL:: [T](https://x/y)\n" +
			"  - Date:: [[date:2024-01-15]]\n" +
			"  - Publication:: [[Pub #source]]\n" +
			"  - First paragraph of the article.\n" +
			"  - Second paragraph of the article.\n"
		assert.Equal(t, want, tanaclip.RenderPaste(root))
	})

	t.Run("renders multiple entities as nested values", func(t *testing.T) {
		t.Parallel()

		root := tanaclip.Format(tanaclip.FormatInput{
			Title:    "T",
			Metadata: tanaclip.PageMetadata{Author: "Jane Doe & John Smith"},
			Fields: tanaclip.FieldMappings{
				tanaclip.FieldAuthor: {DestinationKey: "Author", ReferenceMode: true, ReferenceTagName: "person"},
			},
		})

		want := "%%tana%%\n" +
			"- T\n" +
			"  - Author::\n" +
			"    - [[Jane Doe #person]]\n" +
			"    - [[John Smith #person]]\n"
		assert.Equal(t, want, tanaclip.RenderPaste(root))
	})

	t.Run("brackets multi-word tags", func(t *testing.T) {
		t.Parallel()

		root := tanaclip.Format(tanaclip.FormatInput{Title: "T", Tag: "web clip"})

		assert.Equal(t, "%%tana%%\n- T #[[web clip]]\n", tanaclip.RenderPaste(root))
	})

	t.Run("neutralizes paste syntax in free text", func(t *testing.T) {
		t.Parallel()

		root := tanaclip.Format(tanaclip.FormatInput{
			Title:  "Notes:: part one",
			Blocks: []string{"Label:: value inside a paragraph", "#hashtag opening line", "See [[Other page]] for more"},
		})

		want := "%%tana%%\n" +
			"- Notes:\u200b: part one\n" +
			"  - Label:\u200b: value inside a paragraph\n" +
			"  - \u200b#hashtag opening line\n" +
			"  - See [\u200b[Other page]] for more\n"
		assert.Equal(t, want, tanaclip.RenderPaste(root))
	})

	t.Run("splits repeated colons completely", func(t *testing.T) {
		t.Parallel()

		root := tanaclip.Format(tanaclip.FormatInput{Title: "a:::b"})

		assert.NotContains(t, tanaclip.RenderPaste(root), "a::")
		assert.Equal(t, "%%tana%%\n- a:\u200b:\u200b:b\n", tanaclip.RenderPaste(root))
	})
}
