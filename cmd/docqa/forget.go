package main

import (
	"fmt"

	"github.com/fwojciec/docqa"
)

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docqa.Errorf(docqa.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Corpora.Forget(deps.Ctx, c.ID); err != nil {
		if docqa.ErrorCode(err) == docqa.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: corpus %q not found. Use 'docqa list' to see cached corpora.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted corpus %q\n", c.ID)
	return nil
}
