package mock

import (
	"context"

	"github.com/fwojciec/tanaclip"
)

var _ tanaclip.Clipper = (*Clipper)(nil)

// Clipper is a mock implementation of tanaclip.Clipper.
type Clipper struct {
	ClipFn func(src *tanaclip.Source) (*tanaclip.Clip, error)
}

func (c *Clipper) Clip(src *tanaclip.Source) (*tanaclip.Clip, error) {
	return c.ClipFn(src)
}

var _ tanaclip.ClipService = (*ClipService)(nil)

// ClipService is a mock implementation of tanaclip.ClipService.
type ClipService struct {
	CreateClipFn   func(ctx context.Context, clip *tanaclip.Clip) error
	FindClipByIDFn func(ctx context.Context, id string) (*tanaclip.Clip, error)
	FindClipsFn    func(ctx context.Context, filter tanaclip.ClipFilter) ([]*tanaclip.Clip, error)
	DeleteClipFn   func(ctx context.Context, id string) error
}

func (s *ClipService) CreateClip(ctx context.Context, clip *tanaclip.Clip) error {
	return s.CreateClipFn(ctx, clip)
}

func (s *ClipService) FindClipByID(ctx context.Context, id string) (*tanaclip.Clip, error) {
	return s.FindClipByIDFn(ctx, id)
}

func (s *ClipService) FindClips(ctx context.Context, filter tanaclip.ClipFilter) ([]*tanaclip.Clip, error) {
	return s.FindClipsFn(ctx, filter)
}

func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	return s.DeleteClipFn(ctx, id)
}

var _ tanaclip.ClipWriter = (*ClipWriter)(nil)

// ClipWriter is a mock implementation of tanaclip.ClipWriter.
type ClipWriter struct {
	WriteClipFn func(ctx context.Context, clip *tanaclip.Clip) (string, error)
}

func (w *ClipWriter) WriteClip(ctx context.Context, clip *tanaclip.Clip) (string, error) {
	return w.WriteClipFn(ctx, clip)
}
