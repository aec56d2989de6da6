package docqa_test

import (
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/stretchr/testify/assert"
)

func TestSegmentParagraphs(t *testing.T) {
	t.Parallel()

	t.Run("drops short paragraphs and keeps ids dense", func(t *testing.T) {
		t.Parallel()

		got := docqa.SegmentParagraphs("  short\nThis is long enough\n\n  Another long one here  ", 10)

		assert.Equal(t, []docqa.Paragraph{
			{ID: 0, Text: "This is long enough"},
			{ID: 1, Text: "Another long one here"},
		}, got)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		got := docqa.SegmentParagraphs("żółw", 4)

		assert.Len(t, got, 1)
	})

	t.Run("returns nil when nothing survives", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docqa.SegmentParagraphs("a\nb\n", 5))
	})
}

func TestSegmentSentences(t *testing.T) {
	t.Parallel()

	paragraphs := []docqa.Paragraph{
		{ID: 0, Text: "Hello world. How are you? Fine"},
		{ID: 3, Text: "Wow! Ok."},
	}

	got := docqa.SegmentSentences(paragraphs, 1)

	assert.Equal(t, []docqa.Sentence{
		{ParagraphID: 0, SentenceID: 0, Text: "Hello world."},
		{ParagraphID: 0, SentenceID: 1, Text: "How are you?"},
		{ParagraphID: 0, SentenceID: 2, Text: "Fine"},
		{ParagraphID: 3, SentenceID: 0, Text: "Wow!"},
		{ParagraphID: 3, SentenceID: 1, Text: "Ok."},
	}, got)
}
