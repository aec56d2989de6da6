// Package langchaingo provides embedding and answering through OpenAI
// compatible servers and Ollama.
package langchaingo

import (
	"context"
	"slices"

	"github.com/fwojciec/docqa"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Defaults for local and hosted servers.
const (
	DefaultOpenAIEmbeddingModel = "text-embedding-3-small"
	DefaultOllamaEmbeddingModel = "nomic-embed-text:latest"
	DefaultOllamaModel          = "llama3.2"
	DefaultOllamaHost           = "http://localhost:11434"
	DefaultBatchSize            = 64
)

// Config configures a langchaingo backed client.
type Config struct {
	Provider       string // ProviderOpenAI or ProviderOllama
	BaseURL        string
	Token          string
	EmbeddingModel string
	Model          string
	BatchSize      int
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.Token == "" && c.BaseURL == "" {
			return docqa.Errorf(docqa.EINVALID, "openai provider needs an API key or a base URL")
		}
	case ProviderOllama:
	default:
		return docqa.Errorf(docqa.EINVALID, "unknown provider %q", c.Provider)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	switch c.Provider {
	case ProviderOpenAI:
		if c.EmbeddingModel == "" {
			c.EmbeddingModel = DefaultOpenAIEmbeddingModel
		}
		if c.Token == "" {
			// Local OpenAI compatible servers accept any token.
			c.Token = "none"
		}
	case ProviderOllama:
		if c.EmbeddingModel == "" {
			c.EmbeddingModel = DefaultOllamaEmbeddingModel
		}
		if c.Model == "" {
			c.Model = DefaultOllamaModel
		}
		if c.BaseURL == "" {
			c.BaseURL = DefaultOllamaHost
		}
	}
	return c
}

// Ensure Embedder implements docqa.Embedder at compile time.
var _ docqa.Embedder = (*Embedder)(nil)

// Embedder implements docqa.Embedder on top of a langchaingo embeddings client.
type Embedder struct {
	embedder embeddings.Embedder
	model    string
}

// NewEmbedder wraps a langchaingo embeddings client.
func NewEmbedder(client embeddings.EmbedderClient, model string, batchSize int) (*Embedder, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	e, err := embeddings.NewEmbedder(client,
		embeddings.WithStripNewLines(true),
		embeddings.WithBatchSize(batchSize),
	)
	if err != nil {
		return nil, err
	}
	return &Embedder{embedder: e, model: model}, nil
}

// NewEmbedderFromConfig creates an Embedder for the configured provider.
func NewEmbedderFromConfig(cfg Config) (*Embedder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var client embeddings.EmbedderClient
	switch cfg.Provider {
	case ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.Token),
			openai.WithEmbeddingModel(cfg.EmbeddingModel),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		client = llm
	case ProviderOllama:
		llm, err := ollama.New(
			ollama.WithModel(cfg.EmbeddingModel),
			ollama.WithServerURL(cfg.BaseURL),
		)
		if err != nil {
			return nil, err
		}
		client = llm
	}

	return NewEmbedder(client, cfg.Provider+":"+cfg.EmbeddingModel, cfg.BatchSize)
}

// Model returns the provider qualified embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

// Embed embeds texts in order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	// The langchaingo embedder rewrites its input in place.
	return e.embedder.EmbedDocuments(ctx, slices.Clone(texts))
}
