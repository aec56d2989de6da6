package docqa_test

import (
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChunks(t *testing.T) {
	t.Parallel()

	docs := []*docqa.Document{
		{ID: "a", Source: "a.txt", Text: "The cat sat on the mat.\nok\nStock markets rallied today."},
		{ID: "b", Source: "b.txt", Text: "Felines often rest on mats."},
	}

	t.Run("preserves document then paragraph order", func(t *testing.T) {
		t.Parallel()

		chunks, texts, err := docqa.BuildChunks(docs, 5)

		require.NoError(t, err)
		assert.Equal(t, []docqa.Chunk{
			{DocID: "a", ParagraphID: 0, Text: "The cat sat on the mat."},
			{DocID: "a", ParagraphID: 1, Text: "Stock markets rallied today."},
			{DocID: "b", ParagraphID: 0, Text: "Felines often rest on mats."},
		}, chunks)
		assert.Equal(t, []string{
			"The cat sat on the mat.",
			"Stock markets rallied today.",
			"Felines often rest on mats.",
		}, texts)
	})

	t.Run("fails with empty corpus when minimum is too strict", func(t *testing.T) {
		t.Parallel()

		_, _, err := docqa.BuildChunks(docs, 1000)

		require.Error(t, err)
		assert.Equal(t, docqa.EEMPTYCORPUS, docqa.ErrorCode(err))
		assert.Contains(t, docqa.ErrorMessage(err), "smaller minimum paragraph length")
	})

	t.Run("fails with empty corpus for empty documents", func(t *testing.T) {
		t.Parallel()

		_, _, err := docqa.BuildChunks([]*docqa.Document{{ID: "e", Source: "e"}}, 1)

		assert.Equal(t, docqa.EEMPTYCORPUS, docqa.ErrorCode(err))
	})
}
