package gemini

import (
	"context"
	"sync"

	"github.com/fwojciec/docqa"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is the embedding model used when none is configured.
const DefaultEmbeddingModel = "gemini-embedding-001"

const (
	// BatchSize is the maximum number of texts sent in one request.
	BatchSize = 100

	defaultConcurrency = 4
	taskType           = "SEMANTIC_SIMILARITY"
)

// Ensure Embedder implements docqa.Embedder at compile time.
var _ docqa.Embedder = (*Embedder)(nil)

// Embedder implements docqa.Embedder using the Gemini embedding API.
type Embedder struct {
	client      *genai.Client
	model       string
	dimension   int32
	concurrency int

	mu       sync.Mutex
	progress func(n int)
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithDimension truncates embeddings to n dimensions.
func WithDimension(n int32) EmbedderOption {
	return func(e *Embedder) { e.dimension = n }
}

// WithConcurrency sets how many batches are embedded at once.
func WithConcurrency(n int) EmbedderOption {
	return func(e *Embedder) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithProgress registers fn to be called with the size of each finished batch.
func WithProgress(fn func(n int)) EmbedderOption {
	return func(e *Embedder) { e.progress = fn }
}

// NewEmbedder creates a new Embedder. An empty model selects DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string, opts ...EmbedderOption) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	e := &Embedder{client: client, model: model, concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

// Embed embeds texts in batches of BatchSize, preserving input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, b := range SplitBatches(len(texts), BatchSize) {
		g.Go(func() error {
			vecs, err := e.embedBatch(ctx, texts[b.Start:b.End])
			if err != nil {
				return err
			}
			copy(out[b.Start:b.End], vecs)
			e.report(len(vecs))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, BuildEmbedConfig(e.dimension))
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, docqa.Errorf(docqa.EPROVIDER, "gemini returned wrong number of embeddings for %d texts", len(texts))
	}

	vecs := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, docqa.Errorf(docqa.EPROVIDER, "gemini returned nil embedding at %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}

func (e *Embedder) report(n int) {
	if e.progress == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progress(n)
}

// BuildEmbedConfig returns the EmbedContentConfig for corpus and query
// embeddings. Both use the same task type so they share one vector space.
func BuildEmbedConfig(dimension int32) *genai.EmbedContentConfig {
	config := &genai.EmbedContentConfig{TaskType: taskType}
	if dimension > 0 {
		config.OutputDimensionality = &dimension
	}
	return config
}

// Batch is a half-open range of input positions.
type Batch struct {
	Start, End int
}

// SplitBatches splits n items into consecutive ranges of at most size items.
func SplitBatches(n, size int) []Batch {
	var batches []Batch
	for start := 0; start < n; start += size {
		batches = append(batches, Batch{Start: start, End: min(start+size, n)})
	}
	return batches
}
