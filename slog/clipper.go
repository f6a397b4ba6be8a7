package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tanaclip"
)

// Ensure LoggingClipper implements tanaclip.Clipper.
var _ tanaclip.Clipper = (*LoggingClipper)(nil)

// LoggingClipper wraps a Clipper with logging.
type LoggingClipper struct {
	next   tanaclip.Clipper
	logger *slog.Logger
}

// NewLoggingClipper creates a new LoggingClipper.
func NewLoggingClipper(next tanaclip.Clipper, logger *slog.Logger) *LoggingClipper {
	return &LoggingClipper{next: next, logger: logger}
}

// Clip delegates to the wrapped clipper and logs what was extracted.
func (c *LoggingClipper) Clip(src *tanaclip.Source) (clip *tanaclip.Clip, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if src != nil {
			attrs = append(attrs, "url", src.URL)
		}
		if clip != nil {
			attrs = append(attrs,
				"title", clip.Title,
				"blocks", len(clip.Blocks),
				"selection", clip.IsSelection,
			)
		}
		c.logger.Info("clip", attrs...)
	}(time.Now())
	return c.next.Clip(src)
}

// Ensure LoggingExtractor implements tanaclip.ContentExtractor.
var _ tanaclip.ContentExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a content engine with logging.
type LoggingExtractor struct {
	next   tanaclip.ContentExtractor
	engine string
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. engine names the
// wrapped engine in log records.
func NewLoggingExtractor(next tanaclip.ContentExtractor, engine string, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, engine: engine, logger: logger}
}

// Extract delegates to the wrapped engine and logs the region size.
func (e *LoggingExtractor) Extract(html string) (res *tanaclip.ExtractResult, err error) {
	defer func(begin time.Time) {
		size := 0
		if res != nil {
			size = len(res.ContentHTML)
		}
		e.logger.Info("engine extraction",
			"engine", e.engine,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
