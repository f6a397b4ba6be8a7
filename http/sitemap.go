package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/tanaclip"
)

// maxSitemaps bounds the number of sitemap documents read for one site.
const maxSitemaps = 50

// Ensure SitemapService implements tanaclip.SitemapService.
var _ tanaclip.SitemapService = (*SitemapService)(nil)

// SitemapService reads XML sitemaps over HTTP.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// FindPages implements tanaclip.SitemapService. When siteURL has a path,
// only pages under that path are returned.
func (s *SitemapService) FindPages(ctx context.Context, siteURL string, filter tanaclip.URLFilter) ([]tanaclip.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	site, err := url.Parse(siteURL)
	if err != nil || site.Host == "" {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "invalid site URL: %q", siteURL)
	}
	root := &url.URL{Scheme: site.Scheme, Host: site.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	r := &sitemapReader{svc: s, seen: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := r.read(ctx, sm); err != nil {
			return nil, err
		}
	}

	prefix := strings.TrimSuffix(site.Path, "/")
	pages := []tanaclip.Page{}
	seenPages := make(map[string]bool)
	for _, p := range r.pages {
		if seenPages[p.URL] || !underPath(p.URL, prefix) || !filter.Allows(p) {
			continue
		}
		seenPages[p.URL] = true
		pages = append(pages, p)
	}

	slices.SortStableFunc(pages, func(a, b tanaclip.Page) int {
		return b.LastModified.Compare(a.LastModified)
	})
	if filter.Limit > 0 && len(pages) > filter.Limit {
		pages = pages[:filter.Limit]
	}
	return pages, nil
}

// underPath reports whether rawURL's path is prefix or lies below it.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// locateSitemaps returns the sitemaps declared in robots.txt, or
// /sitemap.xml when robots.txt declares none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	body, err := s.get(ctx, root.JoinPath("robots.txt").String())
	if err == nil {
		defer body.Close()
		var sitemaps []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			name, value, ok := strings.Cut(line, ":")
			if !ok || !strings.EqualFold(strings.TrimSpace(name), "sitemap") {
				continue
			}
			if v := strings.TrimSpace(value); v != "" {
				sitemaps = append(sitemaps, v)
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return []string{root.JoinPath("sitemap.xml").String()}, nil
}

// sitemapReader accumulates pages while walking sitemaps and indexes.
type sitemapReader struct {
	svc   *SitemapService
	seen  map[string]bool
	pages []tanaclip.Page
}

func (r *sitemapReader) read(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.seen[sitemapURL] || len(r.seen) >= maxSitemaps {
		return nil
	}
	r.seen[sitemapURL] = true

	body, err := r.svc.get(ctx, sitemapURL)
	if tanaclip.ErrorCode(err) == tanaclip.ENOTFOUND {
		return nil
	} else if err != nil {
		return err
	}
	defer body.Close()

	var src io.Reader = body
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return tanaclip.Errorf(tanaclip.EINVALID, "sitemap %s: %v", sitemapURL, err)
		}
		defer gz.Close()
		src = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(src); err != nil {
		return tanaclip.Errorf(tanaclip.EINVALID, "sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return tanaclip.Errorf(tanaclip.EINVALID, "sitemap %s: empty document", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, el := range root.SelectElements("sitemap") {
			if loc := locOf(el); loc != "" {
				if err := r.read(ctx, loc); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, el := range root.SelectElements("url") {
		loc := locOf(el)
		if loc == "" {
			continue
		}
		page := tanaclip.Page{URL: loc}
		if lastmod := el.SelectElement("lastmod"); lastmod != nil {
			if t, ok := tanaclip.ParseDate(strings.TrimSpace(lastmod.Text())); ok {
				page.LastModified = t
			}
		}
		r.pages = append(r.pages, page)
	}
	return nil
}

func locOf(el *etree.Element) string {
	loc := el.SelectElement("loc")
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(loc.Text())
}

// get fetches targetURL. A 404 or 410 returns ENOTFOUND.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "invalid URL %q: %v", targetURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, MaxBodySize), resp.Body}, nil
	case http.StatusNotFound, http.StatusGone:
		resp.Body.Close()
		return nil, tanaclip.Errorf(tanaclip.ENOTFOUND, "not found: %s", targetURL)
	}
	resp.Body.Close()
	return nil, tanaclip.Errorf(tanaclip.EINTERNAL, "HTTP %d for %s", resp.StatusCode, targetURL)
}
