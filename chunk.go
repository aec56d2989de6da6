package docqa

import (
	"context"
)

// DefaultMinParagraphLen is the default minimum paragraph length, in characters,
// for a paragraph to be indexed.
const DefaultMinParagraphLen = 50

// Chunk is a paragraph-level unit of text from one document and the atomic
// retrieval granularity. Its identity is (DocID, ParagraphID).
type Chunk struct {
	DocID       string `json:"docId"`
	ParagraphID int    `json:"paragraphId"`
	Text        string `json:"text"`
}

// BuildChunks segments each document into paragraphs of at least minLen
// characters and returns the chunks together with their raw texts, in
// document order then paragraph order.
//
// Returns EEMPTYCORPUS if no paragraph survives.
func BuildChunks(docs []*Document, minLen int) ([]Chunk, []string, error) {
	var chunks []Chunk
	var texts []string

	for _, d := range docs {
		for _, p := range SegmentParagraphs(d.Text, minLen) {
			chunks = append(chunks, Chunk{DocID: d.ID, ParagraphID: p.ID, Text: p.Text})
			texts = append(texts, p.Text)
		}
	}

	if len(chunks) == 0 {
		return nil, nil, Errorf(EEMPTYCORPUS, "no paragraphs found to index (try a smaller minimum paragraph length than %d)", minLen)
	}
	return chunks, texts, nil
}

// SearchResult represents a ranked chunk.
type SearchResult struct {
	Score float32 `json:"score"`
	Chunk Chunk   `json:"chunk"`
}

// Index is a semantic index over the paragraphs of a corpus.
type Index interface {
	// BuildFromDocs chunks and embeds docs, replacing any previous state
	// only once both steps succeed.
	// Returns EEMPTYCORPUS if no chunk survives and EPROVIDER if embedding fails.
	BuildFromDocs(ctx context.Context, docs []*Document, minLen int) error

	// Search returns up to topK chunks ranked by descending cosine similarity.
	// Returns ENOTBUILT before a successful build or load.
	Search(ctx context.Context, query string, topK int) ([]SearchResult, error)

	// Save persists the chunks and embeddings to path.
	// Returns ENOTHINGTOSAVE if the index is not built.
	Save(path string) error

	// Load replaces the in-memory state with the artifact at path.
	// Returns ECACHENOTFOUND or ECACHECORRUPT.
	Load(path string) error

	// Reset returns the index to the empty state.
	Reset()

	// Len returns the number of indexed chunks, zero when empty.
	Len() int

	// Dimension returns the embedding dimension, zero when empty.
	Dimension() int
}
