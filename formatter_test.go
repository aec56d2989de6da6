package docqa_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPassages(t *testing.T) {
	t.Parallel()

	t.Run("formats single passage with label", func(t *testing.T) {
		t.Parallel()

		results := []docqa.SearchResult{
			{Score: 0.9, Chunk: docqa.Chunk{DocID: "a.pdf", ParagraphID: 2, Text: "The cat sat on the mat."}},
		}

		assert.Equal(t, "[a.pdf | P2]\nThe cat sat on the mat.", docqa.FormatPassages(results))
	})

	t.Run("separates passages with blank line", func(t *testing.T) {
		t.Parallel()

		results := []docqa.SearchResult{
			{Chunk: docqa.Chunk{DocID: "a.pdf", ParagraphID: 0, Text: "First."}},
			{Chunk: docqa.Chunk{DocID: "b.docx", ParagraphID: 1, Text: "Second."}},
		}

		assert.Equal(t, "[a.pdf | P0]\nFirst.\n\n[b.docx | P1]\nSecond.", docqa.FormatPassages(results))
	})

	t.Run("returns empty string for nil slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docqa.FormatPassages(nil))
	})
}

func TestFitPassages(t *testing.T) {
	t.Parallel()

	results := []docqa.SearchResult{
		{Chunk: docqa.Chunk{DocID: "a", Text: "one"}},
		{Chunk: docqa.Chunk{DocID: "a", ParagraphID: 1, Text: "two"}},
		{Chunk: docqa.Chunk{DocID: "a", ParagraphID: 2, Text: "three"}},
	}
	tenEach := &mock.TokenCounter{
		CountTokensFn: func(context.Context, string) (int, error) { return 10, nil },
	}

	t.Run("keeps prefix within budget", func(t *testing.T) {
		t.Parallel()

		got, err := docqa.FitPassages(context.Background(), tenEach, results, 25)

		require.NoError(t, err)
		assert.Equal(t, results[:2], got)
	})

	t.Run("keeps all when budget allows", func(t *testing.T) {
		t.Parallel()

		got, err := docqa.FitPassages(context.Background(), tenEach, results, 30)

		require.NoError(t, err)
		assert.Equal(t, results, got)
	})

	t.Run("nil counter keeps all", func(t *testing.T) {
		t.Parallel()

		got, err := docqa.FitPassages(context.Background(), nil, results, 1)

		require.NoError(t, err)
		assert.Equal(t, results, got)
	})

	t.Run("propagates counter error", func(t *testing.T) {
		t.Parallel()

		counter := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) { return 0, errors.New("tokenizer down") },
		}

		_, err := docqa.FitPassages(context.Background(), counter, results, 100)

		require.Error(t, err)
	})
}
