package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/intent"
)

// maxPrintedText truncates long text results such as the full text.
const maxPrintedText = 1000

// Run executes the ask command. Questions are answered from the top ranked
// passages; other requests run extraction over the corpus documents.
func (c *AskCmd) Run(deps *Dependencies) error {
	src, err := c.Input.Source()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	corpus, err := deps.Corpora.Open(deps.Ctx, src, orDefault(c.MinParLen, deps.Config.MinParagraphLen), false)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	in := docqa.DetectIntent(c.Query)
	var text string
	if in.Name == docqa.IntentQA {
		text, err = c.passages(deps)
	} else {
		text, err = corpusText(deps, corpus.ID)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	results, err := deps.Executor.Execute(deps.Ctx, text, in)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	printResults(deps.Stdout, results)
	return nil
}

// passages returns the ranked passages that fit the context token budget.
func (c *AskCmd) passages(deps *Dependencies) (string, error) {
	results, err := deps.Index.Search(deps.Ctx, c.Query, orDefault(c.TopK, deps.Config.TopK))
	if err != nil {
		return "", err
	}
	fitted, err := docqa.FitPassages(deps.Ctx, deps.Tokens, results, deps.Config.MaxContextTokens)
	if err != nil {
		return "", err
	}
	if len(fitted) == 0 && len(results) > 0 {
		fitted = results[:1]
	}
	return docqa.FormatPassages(fitted), nil
}

func corpusText(deps *Dependencies, corpusID string) (string, error) {
	docs, err := deps.Corpora.Documents(deps.Ctx, corpusID)
	if err != nil {
		return "", err
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return strings.Join(texts, "\n"), nil
}

func printResults(w io.Writer, results []intent.Result) {
	heading := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(w, "\n=== RESULTS ===")
	for _, r := range results {
		fmt.Fprintf(w, "\n%s\n", heading("["+strings.ToUpper(r.Key)+"]"))
		if r.Key == intent.KeyAnswer || r.Key == docqa.TargetFullText {
			fmt.Fprintln(w, truncate(r.Text, maxPrintedText))
			continue
		}
		if len(r.Values) == 0 {
			fmt.Fprintln(w, "  (none found)")
			continue
		}
		for _, v := range r.Values {
			fmt.Fprintln(w, "  -", v)
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
