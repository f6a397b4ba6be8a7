// Package http provides an HTTP-based implementation of tanaclip.Fetcher
// for pages that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/tanaclip"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the clipper to servers.
const DefaultUserAgent = "tanaclip/1.0 (+https://github.com/fwojciec/tanaclip)"

// MaxBodySize bounds the number of bytes read from a response.
const MaxBodySize = 10 << 20

// Ensure Fetcher implements tanaclip.Fetcher at compile time.
var _ tanaclip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML using plain HTTP requests. Bodies are decoded
// to UTF-8 from the charset declared by the response or the document.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML of the page at url. A missing page returns
// ENOTFOUND and a non-HTML response returns EINVALID.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", tanaclip.Errorf(tanaclip.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", tanaclip.Errorf(tanaclip.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", tanaclip.Errorf(tanaclip.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", tanaclip.Errorf(tanaclip.EINVALID, "unsupported content type %q for %s", contentType, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), contentType)
	if err != nil {
		return "", tanaclip.Errorf(tanaclip.EINTERNAL, "decoding %s: %v", url, err)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// isHTML reports whether contentType names an HTML document. A missing
// content type is accepted.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml" || strings.HasPrefix(mediaType, "text/plain")
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
