package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/tanaclip"
	"github.com/fwojciec/tanaclip/batch"
	"github.com/fwojciec/tanaclip/goquery"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	filter, err := c.urlFilter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		return err
	}

	urls := append([]string(nil), c.URLs...)
	if c.List != "" {
		listed, err := readURLList(c.List)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		urls = append(urls, listed...)
	}

	runner := deps.Runner
	if c.Index != "" {
		found, err := runner.Discover(deps.Ctx, c.Index, goquery.ExtractLinks, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error discovering %s: %s\n", c.Index, tanaclip.ErrorMessage(err))
			return err
		}
		urls = append(urls, found...)
	}

	if c.Sitemap != "" {
		pages, err := deps.Sitemaps.FindPages(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error reading sitemap of %s: %s\n", c.Sitemap, tanaclip.ErrorMessage(err))
			return err
		}
		for _, p := range pages {
			urls = append(urls, p.URL)
		}
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no URLs given. Pass URLs, --list, --index or --sitemap.")
		return tanaclip.Errorf(tanaclip.EINVALID, "no URLs given")
	}

	runner.Renderer = deps.Renderer()
	runner.Format = c.Format
	runner.Concurrency = c.Concurrency
	runner.Writer = deps.Writer
	if c.Save {
		runner.Clips = deps.Clips
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "  Clipping %d pages\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", batch.TruncateURL(event.URL, 60), event.Error)
		}
	}

	result, err := runner.Run(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	for _, item := range result.Items {
		switch {
		case item.Err != nil && item.Clip != nil:
			fmt.Fprintf(deps.Stderr, "  failed to save %s: %v\n", batch.TruncateURL(item.URL, 60), item.Err)
		case item.Err == nil && item.Path != "":
			fmt.Fprintf(deps.Stdout, "Wrote %s\n", item.Path)
		}
	}
	if deps.Writer == nil && !c.Save {
		for _, item := range result.Items {
			if item.Err == nil {
				fmt.Fprint(deps.Stdout, item.Clip.Payload)
			}
		}
	}

	fmt.Fprintf(deps.Stderr, "  Clipped %d pages (%d failed, %d duplicates)\n",
		result.Clipped, result.Failed, result.Skipped)
	return nil
}

// urlFilter compiles the discovery flags.
func (c *BatchCmd) urlFilter() (tanaclip.URLFilter, error) {
	filter := tanaclip.URLFilter{Limit: c.Limit}
	for _, pattern := range c.Filter {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return filter, tanaclip.Errorf(tanaclip.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return filter, tanaclip.Errorf(tanaclip.EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	if c.Since != "" {
		since, ok := tanaclip.ParseDate(c.Since)
		if !ok {
			return filter, tanaclip.Errorf(tanaclip.EINVALID, "invalid date %q", c.Since)
		}
		filter.Since = since
	}
	return filter, nil
}

// readURLList reads one URL per line, ignoring blank lines and # comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
