package index_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/index"
	"github.com/fwojciec/docqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// concepts maps words to the dimension they load. Unknown words share the
// last dimension.
var concepts = map[string]int{
	"cat": 0, "cats": 0, "feline": 0, "felines": 0, "kitten": 0,
	"sleep": 1, "rest": 1, "sat": 1, "sit": 1, "nap": 1, "mat": 1, "mats": 1,
	"stock": 2, "stocks": 2, "market": 2, "markets": 2, "rallied": 2,
}

const conceptDims = 4

// conceptEmbedder returns deterministic bag-of-concepts vectors.
func conceptEmbedder() *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				v := make([]float32, conceptDims)
				words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !unicode.IsLetter(r) })
				for _, w := range words {
					if d, ok := concepts[w]; ok {
						v[d]++
					} else {
						v[conceptDims-1]++
					}
				}
				out[i] = v
			}
			return out, nil
		},
		ModelFn: func() string { return "concepts" },
	}
}

func catDocs() []*docqa.Document {
	return []*docqa.Document{
		{ID: "A", Source: "A", Text: "The cat sat on the mat.\nStock markets rallied today."},
		{ID: "B", Source: "B", Text: "Felines often rest on mats."},
	}
}

func builtIndex(t *testing.T) *index.Index {
	t.Helper()
	idx := index.New(conceptEmbedder())
	require.NoError(t, idx.BuildFromDocs(context.Background(), catDocs(), 5))
	return idx
}

func TestIndex_SearchRanksRelatedParagraphsFirst(t *testing.T) {
	t.Parallel()

	// Given an index over a cat corpus with one unrelated paragraph
	idx := builtIndex(t)

	// When I ask where cats sleep
	results, err := idx.Search(context.Background(), "where do cats sleep", 2)

	// Then both cat paragraphs outrank the markets paragraph
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotContains(t, r.Chunk.Text, "markets")
	}
	assert.Equal(t, docqa.Chunk{DocID: "A", ParagraphID: 0, Text: "The cat sat on the mat."}, results[0].Chunk)
}

func TestIndex_SearchScoresAreDescending(t *testing.T) {
	t.Parallel()

	idx := builtIndex(t)

	results, err := idx.Search(context.Background(), "stock cat", 10)

	require.NoError(t, err)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestIndex_SearchClampsTopK(t *testing.T) {
	t.Parallel()

	idx := builtIndex(t)

	results, err := idx.Search(context.Background(), "cat", 100)

	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestIndex_SearchIsIdempotent(t *testing.T) {
	t.Parallel()

	idx := builtIndex(t)

	first, err := idx.Search(context.Background(), "markets", 3)
	require.NoError(t, err)
	second, err := idx.Search(context.Background(), "markets", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIndex_SearchSelfSimilarity(t *testing.T) {
	t.Parallel()

	idx := builtIndex(t)

	results, err := idx.Search(context.Background(), "Stock markets rallied today.", 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Stock markets rallied today.", results[0].Chunk.Text)
	assert.GreaterOrEqual(t, results[0].Score, float32(0.99))
}

func TestIndex_SearchBreaksTiesByDocumentAndParagraph(t *testing.T) {
	t.Parallel()

	// Given an embedder that maps every text to the same vector
	embedder := &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i := range out {
				out[i] = []float32{1, 1}
			}
			return out, nil
		},
	}
	idx := index.New(embedder)
	docs := []*docqa.Document{
		{ID: "b", Source: "b", Text: "second document para"},
		{ID: "a", Source: "a", Text: "first document para one\nfirst document para two"},
	}
	require.NoError(t, idx.BuildFromDocs(context.Background(), docs, 1))

	// When I search
	results, err := idx.Search(context.Background(), "anything", 3)

	// Then equal scores are ordered by document then paragraph
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Chunk.DocID)
	assert.Equal(t, 0, results[0].Chunk.ParagraphID)
	assert.Equal(t, "a", results[1].Chunk.DocID)
	assert.Equal(t, 1, results[1].Chunk.ParagraphID)
	assert.Equal(t, "b", results[2].Chunk.DocID)
}

func TestIndex_SearchBeforeBuild(t *testing.T) {
	t.Parallel()

	idx := index.New(conceptEmbedder())

	_, err := idx.Search(context.Background(), "cat", 1)

	assert.Equal(t, docqa.ENOTBUILT, docqa.ErrorCode(err))
}

func TestIndex_SearchRejectsNonPositiveTopK(t *testing.T) {
	t.Parallel()

	idx := builtIndex(t)

	_, err := idx.Search(context.Background(), "cat", 0)

	assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err))
}

func TestIndex_BuildFailsWhenNoParagraphSurvives(t *testing.T) {
	t.Parallel()

	idx := index.New(conceptEmbedder())

	err := idx.BuildFromDocs(context.Background(), catDocs(), 1000)

	assert.Equal(t, docqa.EEMPTYCORPUS, docqa.ErrorCode(err))
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_BuildCallsProviderOnce(t *testing.T) {
	t.Parallel()

	inner := conceptEmbedder()
	var calls int
	var got []string
	embedder := &mock.Embedder{
		EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			calls++
			got = texts
			return inner.Embed(ctx, texts)
		},
	}
	idx := index.New(embedder)

	require.NoError(t, idx.BuildFromDocs(context.Background(), catDocs(), 5))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{
		"The cat sat on the mat.",
		"Stock markets rallied today.",
		"Felines often rest on mats.",
	}, got)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, conceptDims, idx.Dimension())
}

func TestIndex_ProviderFailureKeepsPreviousState(t *testing.T) {
	t.Parallel()

	// Given a built index whose provider starts failing
	inner := conceptEmbedder()
	providerErr := errors.New("quota exceeded")
	fail := false
	embedder := &mock.Embedder{
		EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			if fail {
				return nil, providerErr
			}
			return inner.Embed(ctx, texts)
		},
	}
	idx := index.New(embedder)
	require.NoError(t, idx.BuildFromDocs(context.Background(), catDocs(), 5))
	before := idx.Chunks()
	want, err := idx.Search(context.Background(), "cat", 3)
	require.NoError(t, err)

	// When a rebuild with different documents fails
	fail = true
	err = idx.BuildFromDocs(context.Background(), []*docqa.Document{{ID: "C", Source: "C", Text: "Completely different text here."}}, 5)

	// Then the error is a provider error wrapping the cause
	require.Error(t, err)
	assert.Equal(t, docqa.EPROVIDER, docqa.ErrorCode(err))
	assert.ErrorIs(t, err, providerErr)

	// And the previous chunks are still searchable
	assert.Equal(t, before, idx.Chunks())
	fail = false
	got, err := idx.Search(context.Background(), "cat", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIndex_Reset(t *testing.T) {
	t.Parallel()

	idx := index.New(conceptEmbedder())
	require.NoError(t, idx.BuildFromDocs(context.Background(), catDocs(), 5))

	idx.Reset()

	assert.Zero(t, idx.Len())
	assert.Zero(t, idx.Dimension())
	_, err := idx.Search(context.Background(), "cat", 1)
	assert.Equal(t, docqa.ENOTBUILT, docqa.ErrorCode(err))
	assert.Equal(t, docqa.ENOTHINGTOSAVE, docqa.ErrorCode(idx.Save(filepath.Join(t.TempDir(), "x.idx"))))
}

func TestIndex_BuildRejectsMisalignedVectors(t *testing.T) {
	t.Parallel()

	embedder := &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil
		},
	}
	idx := index.New(embedder)

	err := idx.BuildFromDocs(context.Background(), catDocs(), 5)

	assert.Equal(t, docqa.EPROVIDER, docqa.ErrorCode(err))
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	// Given a built index saved below a missing directory
	idx := builtIndex(t)
	path := filepath.Join(t.TempDir(), "cache", "corpus.idx")
	require.NoError(t, idx.Save(path))

	// When I load it into a fresh index
	restored := index.New(conceptEmbedder())
	require.NoError(t, restored.Load(path))

	// Then chunks are identical and searches match
	assert.Equal(t, idx.Chunks(), restored.Chunks())
	for _, q := range []string{"where do cats sleep", "markets", "mat"} {
		want, err := idx.Search(context.Background(), q, 3)
		require.NoError(t, err)
		got, err := restored.Search(context.Background(), q, 3)
		require.NoError(t, err)

		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Chunk, got[i].Chunk)
			assert.InDelta(t, want[i].Score, got[i].Score, 1e-6)
		}
	}
}

func TestIndex_SaveBeforeBuild(t *testing.T) {
	t.Parallel()

	idx := index.New(conceptEmbedder())
	path := filepath.Join(t.TempDir(), "corpus.idx")

	err := idx.Save(path)

	assert.Equal(t, docqa.ENOTHINGTOSAVE, docqa.ErrorCode(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestIndex_LoadMissingCache(t *testing.T) {
	t.Parallel()

	idx := index.New(conceptEmbedder())

	err := idx.Load(filepath.Join(t.TempDir(), "missing.idx"))

	assert.Equal(t, docqa.ECACHENOTFOUND, docqa.ErrorCode(err))
}

func TestIndex_LoadCorruptCacheKeepsState(t *testing.T) {
	t.Parallel()

	// Given a built index and a garbage cache file
	idx := builtIndex(t)
	path := filepath.Join(t.TempDir(), "corrupt.idx")
	require.NoError(t, os.WriteFile(path, []byte("not a cache"), 0644))

	// When I load it
	err := idx.Load(path)

	// Then the failure is reported as corruption and the index still works
	assert.Equal(t, docqa.ECACHECORRUPT, docqa.ErrorCode(err))
	assert.Equal(t, 3, idx.Len())
}

func TestIndex_LoadDirectoryIsCorrupt(t *testing.T) {
	t.Parallel()

	idx := index.New(conceptEmbedder())

	err := idx.Load(t.TempDir())

	assert.Equal(t, docqa.ECACHECORRUPT, docqa.ErrorCode(err))
}
