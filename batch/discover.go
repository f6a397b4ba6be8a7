package batch

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/tanaclip"
)

// LinkFunc extracts the absolute page links found in html.
type LinkFunc func(html, baseURL string) ([]string, error)

// Discover fetches the index page at indexURL and returns the pages it
// links to, in document order. Only links under the index page's path
// that pass the filter's patterns are kept, up to its limit. Index pages
// carry no modification times, so filter.Since is not applied.
func (r *Runner) Discover(ctx context.Context, indexURL string, links LinkFunc, filter tanaclip.URLFilter) ([]string, error) {
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, indexURL, r.Fetcher.Fetch, r.Log, delays)
	if err != nil {
		return nil, err
	}

	found, err := links(html, indexURL)
	if err != nil {
		return nil, err
	}

	prefix := pathPrefix(indexURL)
	var urls []string
	for _, link := range found {
		if !inScope(link, prefix) || !filter.Match(link) {
			continue
		}
		urls = append(urls, link)
		if filter.Limit > 0 && len(urls) == filter.Limit {
			break
		}
	}
	return urls, nil
}

// pathPrefix returns the directory portion of rawURL's path, ending in "/".
func pathPrefix(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "/"
	}
	p := u.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i+1]
	}
	return "/"
}

func inScope(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	return strings.HasPrefix(p, prefix)
}
