package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fwojciec/docqa"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	src, err := c.Input.Source()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	if _, err := deps.Corpora.Open(deps.Ctx, src, orDefault(c.MinParLen, deps.Config.MinParagraphLen), false); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	results, err := deps.Index.Search(deps.Ctx, c.Query, orDefault(c.TopK, deps.Config.TopK))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	header := color.New(color.FgCyan).SprintfFunc()
	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %s\n",
			i+1, header("[%.4f] %s | P%d", r.Score, r.Chunk.DocID, r.Chunk.ParagraphID), r.Chunk.Text)
	}
	return nil
}
