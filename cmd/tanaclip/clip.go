package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/tanaclip"
)

// Run executes the clip command.
func (c *ClipCmd) Run(deps *Dependencies) error {
	src := &tanaclip.Source{URL: c.URL, Selection: c.Selection}

	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		src.HTML = string(data)
	} else {
		html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error fetching %s: %s\n", c.URL, tanaclip.ErrorMessage(err))
			return err
		}
		src.HTML = html
	}

	clip, err := deps.Clipper.Clip(src)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		return err
	}

	payload, err := deps.Renderer().Render(clip, c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		return err
	}
	clip.Format = c.Format
	clip.Payload = payload

	if len(clip.Blocks) == 0 {
		fmt.Fprintln(deps.Stderr, "warning: no content found; only metadata was clipped")
	}

	if c.Save {
		if err := deps.Clips.CreateClip(deps.Ctx, clip); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved clip %s\n", clip.ID)
	}

	if deps.Writer == nil {
		fmt.Fprint(deps.Stdout, clip.Payload)
		return nil
	}

	path, err := deps.Writer.WriteClip(deps.Ctx, clip)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
