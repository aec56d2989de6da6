package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/docqa"
)

// Run executes the sentences command.
func (c *SentencesCmd) Run(deps *Dependencies) error {
	src, err := c.Input.Source()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	docs, err := deps.Corpora.LoadDocuments(deps.Ctx, src)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	label := color.New(color.FgCyan).SprintfFunc()
	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		paras := docqa.SegmentParagraphs(doc.Text, c.MinParLen)
		for _, s := range docqa.SegmentSentences(paras, c.MinParLen) {
			fmt.Fprintf(deps.Stdout, "%s %s\n",
				label("[DOC=%s | P%d | S%d]", doc.ID, s.ParagraphID, s.SentenceID),
				strings.Join(strings.Fields(s.Text), " "))
		}
	}

	return nil
}
