package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docqa"
)

// Ensure LoggingIndex implements docqa.Index.
var _ docqa.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with logging.
type LoggingIndex struct {
	next   docqa.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next docqa.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// BuildFromDocs delegates to the wrapped index and logs the resulting size.
func (i *LoggingIndex) BuildFromDocs(ctx context.Context, docs []*docqa.Document, minLen int) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index build",
			"docs", len(docs),
			"min_len", minLen,
			"chunks", i.next.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.BuildFromDocs(ctx, docs, minLen)
}

// Search delegates to the wrapped index and logs the best score.
func (i *LoggingIndex) Search(ctx context.Context, query string, topK int) (results []docqa.SearchResult, err error) {
	defer func(begin time.Time) {
		var best float32
		if len(results) > 0 {
			best = results[0].Score
		}
		i.logger.Debug("index search",
			"query", query,
			"top_k", topK,
			"results", len(results),
			"best", best,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Search(ctx, query, topK)
}

// Save delegates to the wrapped index.
func (i *LoggingIndex) Save(path string) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index save",
			"path", path,
			"chunks", i.next.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Save(path)
}

// Load delegates to the wrapped index.
func (i *LoggingIndex) Load(path string) (err error) {
	defer func(begin time.Time) {
		i.logger.Debug("index load",
			"path", path,
			"chunks", i.next.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Load(path)
}

// Reset delegates to the wrapped index.
func (i *LoggingIndex) Reset() {
	i.logger.Debug("index reset", "chunks", i.next.Len())
	i.next.Reset()
}

// Len delegates to the wrapped index.
func (i *LoggingIndex) Len() int {
	return i.next.Len()
}

// Dimension delegates to the wrapped index.
func (i *LoggingIndex) Dimension() int {
	return i.next.Dimension()
}
