package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docqa"
)

// Ensure LoggingEmbedder implements docqa.Embedder.
var _ docqa.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   docqa.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next docqa.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the batch size and dimension.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		dim := 0
		if len(vecs) > 0 {
			dim = len(vecs[0])
		}
		e.logger.Info("embed",
			"model", e.next.Model(),
			"texts", len(texts),
			"vectors", len(vecs),
			"dimension", dim,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}

// Model delegates to the wrapped embedder.
func (e *LoggingEmbedder) Model() string {
	return e.next.Model()
}
