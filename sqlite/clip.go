package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/tanaclip"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tanaclip.ClipService = (*ClipService)(nil)

// ClipService implements tanaclip.ClipService using SQLite.
type ClipService struct {
	db *DB
}

// NewClipService creates a new ClipService.
func NewClipService(db *DB) *ClipService {
	return &ClipService{db: db}
}

const clipColumns = "id, url, title, metadata, blocks, is_selection, format, payload, content_hash, created_at"

// CreateClip stores clip, assigning its ID, content hash and timestamp.
func (s *ClipService) CreateClip(ctx context.Context, clip *tanaclip.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}

	metadata, err := json.Marshal(clip.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	blocks := clip.Blocks
	if blocks == nil {
		blocks = []string{}
	}
	encodedBlocks, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("failed to encode blocks: %w", err)
	}

	clip.ID = uuid.New().String()
	clip.CreatedAt = time.Now().UTC()
	clip.ContentHash = hashContent(clip.Content())

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clips (`+clipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, clip.ID, clip.Metadata.URL, clip.Title, string(metadata), string(encodedBlocks),
		clip.IsSelection, clip.Format, clip.Payload, clip.ContentHash, formatTime(clip.CreatedAt))

	return err
}

// FindClipByID retrieves a clip by ID.
func (s *ClipService) FindClipByID(ctx context.Context, id string) (*tanaclip.Clip, error) {
	clip, err := scanClip(s.db.QueryRowContext(ctx, `SELECT `+clipColumns+` FROM clips WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tanaclip.Errorf(tanaclip.ENOTFOUND, "clip not found")
	}
	if err != nil {
		return nil, err
	}
	return clip, nil
}

// FindClips retrieves clips matching the filter, newest first.
func (s *ClipService) FindClips(ctx context.Context, filter tanaclip.ClipFilter) ([]*tanaclip.Clip, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + clipColumns + " FROM clips WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clips := []*tanaclip.Clip{}
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

// DeleteClip permanently removes a clip.
func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clips WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return tanaclip.Errorf(tanaclip.ENOTFOUND, "clip not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClip(row scanner) (*tanaclip.Clip, error) {
	var (
		clip      tanaclip.Clip
		url       string
		metadata  string
		blocks    string
		createdAt string
	)
	if err := row.Scan(&clip.ID, &url, &clip.Title, &metadata, &blocks,
		&clip.IsSelection, &clip.Format, &clip.Payload, &clip.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metadata), &clip.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(blocks), &clip.Blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}
	clip.Metadata.URL = url

	var err error
	if clip.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &clip, nil
}
