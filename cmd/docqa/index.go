package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fwojciec/docqa"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	src, err := c.Input.Source()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	corpus, err := deps.Corpora.Open(deps.Ctx, src, orDefault(c.MinParLen, deps.Config.MinParagraphLen), c.Rebuild)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	color.New(color.FgGreen).Fprintf(deps.Stdout, "Indexed %s\n", corpus.ID)
	fmt.Fprintf(deps.Stdout, "  source:     %s\n", corpus.Source)
	fmt.Fprintf(deps.Stdout, "  paragraphs: %d\n", corpus.ChunkCount)
	fmt.Fprintf(deps.Stdout, "  model:      %s (dimension %d)\n", corpus.Model, corpus.Dimension)
	fmt.Fprintf(deps.Stdout, "  cache:      %s\n", corpus.ArtifactPath)
	return nil
}
