package tanaclip

import (
	"context"
	"strings"
	"time"
)

// Source is a snapshot of a page handed to the clipper.
type Source struct {
	// URL is the location the page was loaded from.
	URL string

	// HTML is the full page markup.
	HTML string

	// Selection is the HTML of the user's text selection, if any.
	// When non-empty, content is extracted from the selection only.
	Selection string
}

// Clip is the result of clipping a page: the resolved metadata and the
// ordered content blocks, plus the formatted payload once exported.
type Clip struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Metadata    PageMetadata `json:"metadata"`
	Blocks      []string     `json:"blocks"`
	ContentHTML string       `json:"-"`
	IsSelection bool         `json:"isSelection"`
	Format      string       `json:"format,omitempty"`
	Payload     string       `json:"payload,omitempty"`
	ContentHash string       `json:"contentHash,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Validate returns an error if the clip contains invalid fields.
func (c *Clip) Validate() error {
	if c.Metadata.URL == "" {
		return Errorf(EINVALID, "clip URL required")
	}
	return nil
}

// Content returns the clip's blocks joined by blank lines.
func (c *Clip) Content() string {
	return strings.Join(c.Blocks, "\n\n")
}

// Clipper turns a page snapshot into a clip.
type Clipper interface {
	// Clip extracts metadata and content from src. Missing data never
	// produces an error; it yields empty fields or no blocks instead.
	Clip(src *Source) (*Clip, error)
}

// ClipService represents a service for managing clip history.
type ClipService interface {
	// CreateClip stores a new clip, assigning its ID, hash and timestamp.
	CreateClip(ctx context.Context, clip *Clip) error

	// FindClipByID retrieves a clip by ID.
	// Returns ENOTFOUND if clip does not exist.
	FindClipByID(ctx context.Context, id string) (*Clip, error)

	// FindClips retrieves clips matching the filter, newest first.
	FindClips(ctx context.Context, filter ClipFilter) ([]*Clip, error)

	// DeleteClip permanently removes a clip.
	// Returns ENOTFOUND if clip does not exist.
	DeleteClip(ctx context.Context, id string) error
}

// ClipFilter represents a filter for FindClips.
type ClipFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ClipWriter writes formatted clip payloads to durable storage.
type ClipWriter interface {
	// WriteClip persists clip.Payload and returns its location.
	WriteClip(ctx context.Context, clip *Clip) (string, error)
}
