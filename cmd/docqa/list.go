package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/fwojciec/docqa"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	corpora, err := deps.Corpora.Corpora(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	if len(corpora) == 0 {
		fmt.Fprintln(deps.Stdout, "No cached corpora. Use 'docqa index' to build one.")
		return nil
	}

	id := color.New(color.FgCyan).SprintFunc()
	for _, cp := range corpora {
		fmt.Fprintf(deps.Stdout, "%s  %-6s  %5d paragraphs  %s  %s  %s\n",
			id(cp.ID), cp.Kind, cp.ChunkCount, cp.Model, cp.BuiltAt.Local().Format(time.DateTime), cp.Source)
	}

	return nil
}
