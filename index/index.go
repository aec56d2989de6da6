// Package index implements an exact brute-force semantic index over
// paragraph chunks.
package index

import (
	"cmp"
	"context"
	"errors"
	"os"
	"slices"
	"sync"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/fs"
	"github.com/fwojciec/docqa/mus"
)

// Ensure Index implements docqa.Index at compile time.
var _ docqa.Index = (*Index)(nil)

// Index ranks chunks by cosine similarity to a query. It is either empty or
// built; chunks and embeddings are always replaced together.
type Index struct {
	embedder docqa.Embedder

	mu         sync.RWMutex
	chunks     []docqa.Chunk
	embeddings [][]float32 // unit norm, index-aligned with chunks
}

// New creates an empty index that embeds through embedder.
func New(embedder docqa.Embedder) *Index {
	return &Index{embedder: embedder}
}

// BuildFromDocs chunks docs, embeds every chunk in one provider call and
// replaces the index state. On failure the previous state is kept.
func (idx *Index) BuildFromDocs(ctx context.Context, docs []*docqa.Document, minLen int) error {
	chunks, texts, err := docqa.BuildChunks(docs, minLen)
	if err != nil {
		return err
	}

	vecs, err := idx.embedder.Embed(ctx, texts)
	if err != nil {
		return docqa.WrapError(docqa.EPROVIDER, err, "embedding %d chunks failed", len(texts))
	}
	embeddings, err := normalizeAll(vecs, len(texts))
	if err != nil {
		return err
	}

	idx.mu.Lock()
	idx.chunks, idx.embeddings = chunks, embeddings
	idx.mu.Unlock()
	return nil
}

// Search embeds query and returns the topK most similar chunks. Equal
// scores are ordered by document ID, then paragraph ID, then build order.
func (idx *Index) Search(ctx context.Context, query string, topK int) ([]docqa.SearchResult, error) {
	idx.mu.RLock()
	chunks, embeddings := idx.chunks, idx.embeddings
	idx.mu.RUnlock()

	if len(chunks) == 0 {
		return nil, docqa.Errorf(docqa.ENOTBUILT, "index not built; build or load it before searching")
	}
	if topK < 1 {
		return nil, docqa.Errorf(docqa.EINVALID, "top-k must be at least 1, got %d", topK)
	}

	vecs, err := idx.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, docqa.WrapError(docqa.EPROVIDER, err, "embedding query failed")
	}
	q, err := normalizeAll(vecs, 1)
	if err != nil {
		return nil, err
	}
	if len(q[0]) != len(embeddings[0]) {
		return nil, docqa.Errorf(docqa.EPROVIDER, "query embedding has dimension %d, index has %d", len(q[0]), len(embeddings[0]))
	}

	scores := make([]float32, len(chunks))
	for i, e := range embeddings {
		scores[i] = docqa.Dot(q[0], e)
	}

	order := make([]int, len(chunks))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		if c := cmp.Compare(chunks[a].DocID, chunks[b].DocID); c != 0 {
			return c
		}
		if c := cmp.Compare(chunks[a].ParagraphID, chunks[b].ParagraphID); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	k := min(topK, len(chunks))
	results := make([]docqa.SearchResult, k)
	for i, j := range order[:k] {
		results[i] = docqa.SearchResult{Score: scores[j], Chunk: chunks[j]}
	}
	return results, nil
}

// Save writes the chunks and embeddings to path atomically, creating
// parent directories as needed.
func (idx *Index) Save(path string) error {
	idx.mu.RLock()
	a := &mus.Artifact{Chunks: idx.chunks, Embeddings: idx.embeddings}
	idx.mu.RUnlock()

	if len(a.Chunks) == 0 {
		return docqa.Errorf(docqa.ENOTHINGTOSAVE, "index not built; nothing to save")
	}

	data, err := mus.Marshal(a)
	if err != nil {
		return err
	}
	return fs.WriteFileAtomic(path, data)
}

// Load replaces the index state with the artifact at path.
func (idx *Index) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return docqa.Errorf(docqa.ECACHENOTFOUND, "no cache at %s", path)
	} else if err != nil {
		return docqa.WrapError(docqa.ECACHECORRUPT, err, "cache at %s unreadable", path)
	}

	a, err := mus.Unmarshal(data)
	if err != nil {
		return err
	}
	if len(a.Chunks) == 0 {
		return docqa.Errorf(docqa.ECACHECORRUPT, "cache at %s holds no chunks", path)
	}

	idx.mu.Lock()
	idx.chunks, idx.embeddings = a.Chunks, a.Embeddings
	idx.mu.Unlock()
	return nil
}

// Reset drops the chunks and embeddings; Search then reports ENOTBUILT.
func (idx *Index) Reset() {
	idx.mu.Lock()
	idx.chunks, idx.embeddings = nil, nil
	idx.mu.Unlock()
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// Dimension returns the embedding dimension.
func (idx *Index) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if len(idx.embeddings) == 0 {
		return 0
	}
	return len(idx.embeddings[0])
}

// Chunks returns a copy of the indexed chunks in build order.
func (idx *Index) Chunks() []docqa.Chunk {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return slices.Clone(idx.chunks)
}

func normalizeAll(vecs [][]float32, want int) ([][]float32, error) {
	if len(vecs) != want {
		return nil, docqa.Errorf(docqa.EPROVIDER, "provider returned %d vectors for %d texts", len(vecs), want)
	}
	dim := len(vecs[0])
	if dim == 0 {
		return nil, docqa.Errorf(docqa.EPROVIDER, "provider returned empty vectors")
	}

	out := make([][]float32, len(vecs))
	for i, v := range vecs {
		if len(v) != dim {
			return nil, docqa.Errorf(docqa.EPROVIDER, "vector %d has dimension %d, want %d", i, len(v), dim)
		}
		out[i] = docqa.NormalizeVector(v)
	}
	return out, nil
}
