package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/corpus"
	"github.com/fwojciec/docqa/intent"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *Config
	Logger   *slog.Logger
	Corpora  *corpus.Manager
	Index    docqa.Index
	Executor *intent.Executor
	Tokens   docqa.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `help:"Config file path (default ~/.docqa/config.yaml)" type:"path"`
	DB       string `help:"Catalog database path"`
	CacheDir string `help:"Directory for cached indexes"`
	Provider string `help:"Embedding and answer provider: gemini, openai or ollama"`
	Verbose  bool   `short:"v" help:"Log debug output to stderr"`

	Sentences SentencesCmd `cmd:"" help:"Print the indexed sentences of documents"`
	Index     IndexCmd     `cmd:"" help:"Build or load the semantic index of a corpus"`
	Search    SearchCmd    `cmd:"" help:"Search a corpus for the most similar paragraphs"`
	Ask       AskCmd       `cmd:"" help:"Ask a question or extract information from a corpus"`
	List      ListCmd      `cmd:"" help:"List cached corpora"`
	Forget    ForgetCmd    `cmd:"" help:"Delete a cached corpus index"`
}

// SourceFlags selects the documents a command works on.
type SourceFlags struct {
	File   string `xor:"source" help:"Single PDF, DOCX, TXT or MD file" type:"path"`
	URL    string `name:"url" xor:"source" help:"Web page URL"`
	Folder string `xor:"source" help:"Folder of supported documents" type:"path"`
}

// Source returns the selected corpus source.
func (f SourceFlags) Source() (docqa.Source, error) {
	switch {
	case f.File != "":
		return docqa.Source{Kind: docqa.CorpusFile, Location: f.File}, nil
	case f.URL != "":
		return docqa.Source{Kind: docqa.CorpusURL, Location: f.URL}, nil
	case f.Folder != "":
		return docqa.Source{Kind: docqa.CorpusFolder, Location: f.Folder}, nil
	}
	return docqa.Source{}, docqa.Errorf(docqa.EINVALID, "one of --file, --url or --folder is required")
}

// SentencesCmd is the "sentences" subcommand.
type SentencesCmd struct {
	Input     SourceFlags `embed:""`
	MinParLen int         `name:"min-par-len" default:"1" help:"Minimum paragraph and sentence length"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Input     SourceFlags `embed:""`
	MinParLen int         `name:"min-par-len" help:"Minimum paragraph length (default from config)"`
	Rebuild   bool        `help:"Ignore any cached index"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string      `arg:"" help:"Search query"`
	Input     SourceFlags `embed:""`
	MinParLen int         `name:"min-par-len" help:"Minimum paragraph length (default from config)"`
	TopK      int         `name:"top-k" short:"k" help:"Number of results (default from config)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Query     string      `arg:"" help:"Question or extraction request"`
	Input     SourceFlags `embed:""`
	MinParLen int         `name:"min-par-len" help:"Minimum paragraph length (default from config)"`
	TopK      int         `name:"top-k" short:"k" help:"Passages used to answer questions (default from config)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	ID    string `arg:"" help:"Corpus ID as shown by list"`
	Force bool   `help:"Confirm deletion"`
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
