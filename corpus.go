package docqa

import (
	"context"
	"time"
)

// CorpusKind identifies how a corpus was specified by the user.
type CorpusKind string

// Corpus kinds.
const (
	CorpusFile   CorpusKind = "file"
	CorpusFolder CorpusKind = "folder"
	CorpusURL    CorpusKind = "url"
)

// Source names the documents a corpus is built from.
type Source struct {
	Kind     CorpusKind
	Location string // path, folder or URL
}

// Validate returns an error if the source is incomplete.
func (s Source) Validate() error {
	switch s.Kind {
	case CorpusFile, CorpusFolder, CorpusURL:
	default:
		return Errorf(EINVALID, "unknown corpus kind %q", s.Kind)
	}
	if s.Location == "" {
		return Errorf(EINVALID, "corpus location required")
	}
	return nil
}

// Corpus is a catalog entry describing a cached corpus index.
// The ID is the corpus identity derived from the source.
type Corpus struct {
	ID           string     `json:"id"`
	Kind         CorpusKind `json:"kind"`
	Source       string     `json:"source"`
	Model        string     `json:"model"`
	Dimension    int        `json:"dimension"`
	MinParLen    int        `json:"minParagraphLen"`
	ChunkCount   int        `json:"chunkCount"`
	ArtifactPath string     `json:"artifactPath"`
	BuiltAt      time.Time  `json:"builtAt"`
}

// Validate returns an error if the corpus contains invalid fields.
func (c *Corpus) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "corpus ID required")
	}
	if c.Source == "" {
		return Errorf(EINVALID, "corpus source required")
	}
	if c.ArtifactPath == "" {
		return Errorf(EINVALID, "corpus artifact path required")
	}
	return nil
}

// CorpusService represents the catalog of built corpora.
type CorpusService interface {
	// UpsertCorpus creates or replaces the catalog entry for corpus.ID.
	UpsertCorpus(ctx context.Context, corpus *Corpus) error

	// FindCorpusByID retrieves a corpus by ID.
	// Returns ENOTFOUND if the corpus does not exist.
	FindCorpusByID(ctx context.Context, id string) (*Corpus, error)

	// FindCorpora retrieves all catalog entries, most recently built first.
	FindCorpora(ctx context.Context) ([]*Corpus, error)

	// DeleteCorpus removes a corpus and its stored documents.
	// Returns ENOTFOUND if the corpus does not exist.
	DeleteCorpus(ctx context.Context, id string) error
}
