package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tanaclip"
)

// Ensure LoggingClipService implements tanaclip.ClipService.
var _ tanaclip.ClipService = (*LoggingClipService)(nil)

// LoggingClipService wraps a ClipService with logging.
type LoggingClipService struct {
	next   tanaclip.ClipService
	logger *slog.Logger
}

// NewLoggingClipService creates a new LoggingClipService.
func NewLoggingClipService(next tanaclip.ClipService, logger *slog.Logger) *LoggingClipService {
	return &LoggingClipService{next: next, logger: logger}
}

func (s *LoggingClipService) CreateClip(ctx context.Context, clip *tanaclip.Clip) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create clip",
			"id", clip.ID,
			"url", clip.Metadata.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateClip(ctx, clip)
}

func (s *LoggingClipService) FindClipByID(ctx context.Context, id string) (clip *tanaclip.Clip, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find clip", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindClipByID(ctx, id)
}

func (s *LoggingClipService) FindClips(ctx context.Context, filter tanaclip.ClipFilter) (clips []*tanaclip.Clip, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find clips", "count", len(clips), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindClips(ctx, filter)
}

func (s *LoggingClipService) DeleteClip(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete clip", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.DeleteClip(ctx, id)
}
