package docqa_test

import (
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeVector(t *testing.T) {
	t.Parallel()

	t.Run("scales to unit length", func(t *testing.T) {
		t.Parallel()

		got := docqa.NormalizeVector([]float32{3, 4})

		assert.InDelta(t, 0.6, got[0], 1e-6)
		assert.InDelta(t, 0.8, got[1], 1e-6)
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()

		in := []float32{3, 4}
		docqa.NormalizeVector(in)

		assert.Equal(t, []float32{3, 4}, in)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []float32{0, 0}, docqa.NormalizeVector([]float32{0, 0}))
	})
}

func TestDot(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 11.0, docqa.Dot([]float32{1, 2}, []float32{3, 4}), 1e-6)
}
