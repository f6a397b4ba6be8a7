package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/tanaclip"
	main "github.com/fwojciec/tanaclip/cmd/tanaclip"
	"github.com/fwojciec/tanaclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riversClip() *tanaclip.Clip {
	return &tanaclip.Clip{
		Title: "How Rivers Shape Cities",
		Metadata: tanaclip.PageMetadata{
			Title: "How Rivers Shape Cities",
			URL:   "https://example.com/rivers",
		},
		Blocks: []string{"Rivers have always drawn people together."},
	}
}

func TestClipCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("fetches, clips and prints the payload", func(t *testing.T) {
		t.Parallel()

		var gotSource *tanaclip.Source
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: tanaclip.DefaultConfig(),
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html>" + url + "</html>", nil
				},
			},
			Clipper: &mock.Clipper{
				ClipFn: func(src *tanaclip.Source) (*tanaclip.Clip, error) {
					gotSource = src
					return riversClip(), nil
				},
			},
		}

		cmd := &main.ClipCmd{URL: "https://example.com/rivers", Selection: "<p>picked</p>", Format: tanaclip.FormatPaste}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, &tanaclip.Source{
			URL:       "https://example.com/rivers",
			HTML:      "<html>https://example.com/rivers</html>",
			Selection: "<p>picked</p>",
		}, gotSource)
		assert.Equal(t, "%%tana%%\n"+
			"- How Rivers Shape Cities\n"+
			"  - URL:: [How Rivers Shape Cities](https://example.com/rivers)\n"+
			"  - Rivers have always drawn people together.\n", stdout.String())
	})

	t.Run("reports fetch errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "", tanaclip.Errorf(tanaclip.ENOTFOUND, "page not found: %s", url)
				},
			},
		}

		err := (&main.ClipCmd{URL: "https://example.com/gone"}).Run(deps)

		assert.Equal(t, tanaclip.ENOTFOUND, tanaclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "page not found")
	})

	t.Run("saves to history and writes file", func(t *testing.T) {
		t.Parallel()

		var saved *tanaclip.Clip
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Config: tanaclip.DefaultConfig(),
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) { return "<html></html>", nil },
			},
			Clipper: &mock.Clipper{
				ClipFn: func(_ *tanaclip.Source) (*tanaclip.Clip, error) { return riversClip(), nil },
			},
			Clips: &mock.ClipService{
				CreateClipFn: func(_ context.Context, clip *tanaclip.Clip) error {
					clip.ID = "clip-1"
					saved = clip
					return nil
				},
			},
			Writer: &mock.ClipWriter{
				WriteClipFn: func(_ context.Context, clip *tanaclip.Clip) (string, error) {
					return "/out/example.com/rivers.json", nil
				},
			},
		}

		err := (&main.ClipCmd{URL: "https://example.com/rivers", Format: tanaclip.FormatJSON, Save: true}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, tanaclip.FormatJSON, saved.Format)
		assert.Contains(t, saved.Payload, `"nodes"`)
		assert.Equal(t, "Saved clip clip-1\n", stderr.String())
		assert.Equal(t, "Wrote /out/example.com/rivers.json\n", stdout.String())
	})

	t.Run("warns when no content was found", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) { return "<html></html>", nil },
			},
			Clipper: &mock.Clipper{
				ClipFn: func(src *tanaclip.Source) (*tanaclip.Clip, error) {
					return &tanaclip.Clip{Metadata: tanaclip.PageMetadata{URL: src.URL}}, nil
				},
			},
		}

		err := (&main.ClipCmd{URL: "https://example.com/empty"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "no content found")
	})

	t.Run("returns error when save fails", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) { return "<html></html>", nil },
			},
			Clipper: &mock.Clipper{
				ClipFn: func(_ *tanaclip.Source) (*tanaclip.Clip, error) { return riversClip(), nil },
			},
			Clips: &mock.ClipService{
				CreateClipFn: func(_ context.Context, _ *tanaclip.Clip) error {
					return errors.New("database is locked")
				},
			},
		}

		err := (&main.ClipCmd{URL: "https://example.com/rivers", Save: true}).Run(deps)

		require.EqualError(t, err, "database is locked")
	})
}
