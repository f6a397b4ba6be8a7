package main

import (
	"fmt"

	"github.com/fwojciec/tanaclip"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := tanaclip.ClipFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	clips, err := deps.Clips.FindClips(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		return err
	}

	if len(clips) == 0 {
		fmt.Fprintln(deps.Stdout, "No clips found. Use 'tanaclip clip --save' to save one.")
		return nil
	}

	for _, clip := range clips {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			clip.ID,
			clip.CreatedAt.Local().Format("2006-01-02 15:04"),
			clip.Title,
			clip.Metadata.URL,
		)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	clip, err := deps.Clips.FindClipByID(deps.Ctx, c.ID)
	if err != nil {
		if tanaclip.ErrorCode(err) == tanaclip.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: clip %q not found. Use 'tanaclip history' to see saved clips.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		}
		return err
	}

	if c.Format == "" || c.Format == clip.Format {
		fmt.Fprint(deps.Stdout, clip.Payload)
		return nil
	}

	payload, err := deps.Renderer().Render(clip, c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, payload)
	return nil
}
