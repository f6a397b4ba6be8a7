// Package fs writes formatted clip payloads to files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tanaclip"
)

// extensions maps export formats to file extensions.
var extensions = map[string]string{
	tanaclip.FormatPaste:    ".txt",
	tanaclip.FormatJSON:     ".json",
	tanaclip.FormatMarkdown: ".md",
}

// ClipPath converts a clip URL and format to a relative file path under
// a directory named after the host.
// Example: https://www.example.com/2024/rivers, markdown → example.com/2024/rivers.md
func ClipPath(rawURL, format string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", tanaclip.Errorf(tanaclip.EINVALID, "invalid clip URL: %v", err)
	}
	if u.Host == "" {
		return "", tanaclip.Errorf(tanaclip.EINVALID, "clip URL %q has no host", rawURL)
	}
	ext, ok := extensions[format]
	if !ok {
		ext = extensions[tanaclip.FormatPaste]
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.Trim(u.Path, "/")
	switch {
	case path == "":
		path = "index"
	case strings.HasSuffix(u.Path, "/"):
		path += "/index"
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	if path == "" {
		path = "index"
	}

	return filepath.Join(host, filepath.FromSlash(path)) + ext, nil
}

// Ensure Writer implements tanaclip.ClipWriter at compile time.
var _ tanaclip.ClipWriter = (*Writer)(nil)

// Writer writes clip payloads to a directory tree.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteClip writes clip.Payload and returns the file path. The file is
// written to a temporary name and renamed, so readers never see a partial
// payload. An existing file for the same URL and format is replaced.
func (w *Writer) WriteClip(ctx context.Context, clip *tanaclip.Clip) (string, error) {
	if err := clip.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	relPath, err := ClipPath(clip.Metadata.URL, clip.Format)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(w.baseDir, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(clip.Payload); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
