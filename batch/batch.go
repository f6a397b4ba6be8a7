// Package batch provides batch clipping orchestration.
// It coordinates fetching, clipping, rendering and storage of many pages.
package batch

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/tanaclip"
	"github.com/fwojciec/tanaclip/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages clipped at once when
// Runner.Concurrency is not set.
const DefaultConcurrency = 4

// Runner clips a list of pages concurrently.
//
// Clips and Writer are optional. When set, every successful clip is stored
// in the history and its payload written to disk, in input order.
type Runner struct {
	Fetcher     tanaclip.Fetcher
	Clipper     tanaclip.Clipper
	Renderer    *tanaclip.Renderer
	Clips       tanaclip.ClipService
	Writer      tanaclip.ClipWriter
	RateLimiter tanaclip.DomainLimiter
	Format      string
	Concurrency int
	RetryDelays []time.Duration
	Log         LogFunc
}

// Result holds the outcome of a batch run.
type Result struct {
	Clipped int
	Skipped int
	Failed  int
	Items   []Item
}

// Item is the outcome for a single page, in input order.
type Item struct {
	URL  string
	Clip *tanaclip.Clip
	Path string
	Err  error
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type pageResult struct {
	position int
	url      string
	clip     *tanaclip.Clip
	err      error
}

// Run clips every URL in urls. Duplicate URLs (ignoring fragments, host
// case and trailing slashes) are clipped once and counted as skipped.
// Per-page failures are reported in the result; Run itself only fails
// when ctx is canceled.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	seen := bloom.NewFilter(uint(max(len(urls), 1)), 0.001)
	var unique []string
	var skipped int
	for _, u := range urls {
		if u == "" || seen.Seen(u) {
			skipped++
			continue
		}
		unique = append(unique, u)
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(unique))
	var completed atomic.Int64
	total := len(unique)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range unique {
			g.Go(func() error {
				resultCh <- r.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(unique))
	for res := range resultCh {
		completed.Add(1)
		results[res.position] = res

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       res.url,
		}
		if res.err != nil {
			event.Type = ProgressFailed
			event.Error = res.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Skipped: skipped}
	for _, res := range results {
		item := Item{URL: res.url, Clip: res.clip, Err: res.err}
		if item.Err == nil {
			item.Path, item.Err = r.save(ctx, res.clip)
		}
		if item.Err != nil {
			result.Failed++
		} else {
			result.Clipped++
		}
		result.Items = append(result.Items, item)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

// processURL fetches, clips and renders a single page.
func (r *Runner) processURL(ctx context.Context, position int, rawURL string) pageResult {
	result := pageResult{
		position: position,
		url:      rawURL,
	}

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, hostOf(rawURL)); err != nil {
			result.err = err
			return result
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, r.Fetcher.Fetch, r.Log, delays)
	if err != nil {
		result.err = err
		return result
	}

	clip, err := r.Clipper.Clip(&tanaclip.Source{URL: rawURL, HTML: html})
	if err != nil {
		result.err = err
		return result
	}

	if r.Renderer != nil {
		payload, err := r.Renderer.Render(clip, r.Format)
		if err != nil {
			result.err = err
			return result
		}
		clip.Format = r.Format
		if clip.Format == "" {
			clip.Format = tanaclip.FormatPaste
		}
		clip.Payload = payload
	}

	result.clip = clip
	return result
}

// save stores a clip in the history and writes its payload, if configured.
func (r *Runner) save(ctx context.Context, clip *tanaclip.Clip) (string, error) {
	if r.Clips != nil {
		if err := r.Clips.CreateClip(ctx, clip); err != nil {
			return "", err
		}
	}
	if r.Writer == nil {
		return "", nil
	}
	return r.Writer.WriteClip(ctx, clip)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
