package main

import (
	"fmt"

	"github.com/fwojciec/tanaclip"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return tanaclip.Errorf(tanaclip.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Clips.DeleteClip(deps.Ctx, c.ID); err != nil {
		if tanaclip.ErrorCode(err) == tanaclip.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: clip %q not found. Use 'tanaclip history' to see saved clips.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tanaclip.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted clip %s\n", c.ID)
	return nil
}
