package docqa

import (
	"context"
	"math"
)

// Embedder maps text chunks to fixed-dimension vectors. It must be
// deterministic for a fixed model and return vectors index-aligned with texts.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model identifies the embedding model so caches built with another
	// model can be told apart.
	Model() string
}

// NormalizeVector returns a unit-L2-norm copy of v.
// A zero vector is returned as a zero vector of the same length.
func NormalizeVector(v []float32) []float32 {
	out := make([]float32, len(v))
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return out
	}
	inv := 1 / math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}

// Dot returns the dot product of two equal-length vectors. With unit vectors
// this is the cosine similarity.
func Dot(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}
