// Package rod fetches JavaScript-rendered pages with headless Chrome.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/tanaclip"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced. Chrome's memory use grows over long batches and never returns
// to its baseline.
const DefaultMaxPages = 75

// Ensure Fetcher implements tanaclip.Fetcher at compile time.
var _ tanaclip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a headless Chrome browser.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout  time.Duration
	maxPages int

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	closed   bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is
// relaunched.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	f.browser, f.launcher = browser, l
	return f, nil
}

// launch starts a browser with flags that keep background pages rendering.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

// Fetch navigates to url, waits for the page to load and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", contextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextErr(ctx, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextErr(ctx, err)
	}
	return html, nil
}

// acquire returns the browser for the next page, relaunching it once
// maxPages pages have been rendered. A failed relaunch keeps the old browser.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "fetcher closed")
	}

	if f.maxPages > 0 && f.pages >= f.maxPages {
		if browser, l, err := launch(); err == nil {
			_ = f.browser.Close()
			f.launcher.Kill()
			f.browser, f.launcher, f.pages = browser, l, 0
		}
	}
	f.pages++
	return f.browser, nil
}

// contextErr prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 once
// the fetcher is closed.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
