package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/tanaclip"
	main "github.com/fwojciec/tanaclip/cmd/tanaclip"
	"github.com/fwojciec/tanaclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists clips with ID, title and URL", func(t *testing.T) {
		t.Parallel()

		var gotFilter tanaclip.ClipFilter
		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, filter tanaclip.ClipFilter) ([]*tanaclip.Clip, error) {
				gotFilter = filter
				return []*tanaclip.Clip{
					{
						ID:        "clip-123",
						Title:     "How Rivers Shape Cities",
						Metadata:  tanaclip.PageMetadata{URL: "https://example.com/rivers"},
						CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Clips:  clips,
		}

		err := (&main.HistoryCmd{URL: "https://example.com/rivers", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.URL)
		assert.Equal(t, "https://example.com/rivers", *gotFilter.URL)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "clip-123")
		assert.Contains(t, stdout.String(), "How Rivers Shape Cities")
		assert.Contains(t, stdout.String(), "https://example.com/rivers")
	})

	t.Run("shows helpful message when no clips exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Clips: &mock.ClipService{
				FindClipsFn: func(_ context.Context, _ tanaclip.ClipFilter) ([]*tanaclip.Clip, error) {
					return []*tanaclip.Clip{}, nil
				},
			},
		}

		require.NoError(t, (&main.HistoryCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No clips found")
	})

	t.Run("returns error when FindClips fails", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Clips: &mock.ClipService{
				FindClipsFn: func(_ context.Context, _ tanaclip.ClipFilter) ([]*tanaclip.Clip, error) {
					return nil, errors.New("database connection failed")
				},
			},
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	saved := func() *tanaclip.Clip {
		clip := riversClip()
		clip.ID = "clip-1"
		clip.Format = tanaclip.FormatPaste
		clip.Payload = "%%tana%%\n- saved payload\n"
		return clip
	}

	newDeps := func(stdout, stderr *bytes.Buffer) *main.Dependencies {
		return &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Config: tanaclip.DefaultConfig(),
			Clips: &mock.ClipService{
				FindClipByIDFn: func(_ context.Context, id string) (*tanaclip.Clip, error) {
					if id != "clip-1" {
						return nil, tanaclip.Errorf(tanaclip.ENOTFOUND, "clip not found")
					}
					return saved(), nil
				},
			},
		}
	}

	t.Run("prints saved payload", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := (&main.ShowCmd{ID: "clip-1"}).Run(newDeps(stdout, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Equal(t, "%%tana%%\n- saved payload\n", stdout.String())
	})

	t.Run("re-renders in another format", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := (&main.ShowCmd{ID: "clip-1", Format: tanaclip.FormatMarkdown}).Run(newDeps(stdout, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "title: How Rivers Shape Cities\n")
		assert.Contains(t, stdout.String(), "Rivers have always drawn people together.\n")
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		err := (&main.ShowCmd{ID: "clip-1", Format: "pdf"}).Run(newDeps(&bytes.Buffer{}, &bytes.Buffer{}))

		assert.Equal(t, tanaclip.EINVALID, tanaclip.ErrorCode(err))
	})

	t.Run("reports missing clip", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := (&main.ShowCmd{ID: "nope"}).Run(newDeps(&bytes.Buffer{}, stderr))

		assert.Equal(t, tanaclip.ENOTFOUND, tanaclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), `clip "nope" not found`)
	})
}
