// Package slog provides logging decorators for docqa services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/docqa"
)

// Ensure LoggingFetcher implements docqa.Fetcher.
var _ docqa.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Failed fetches are logged at
// warn level since the loader may retry them.
type LoggingFetcher struct {
	next   docqa.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docqa.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the source host and page size.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	defer func(begin time.Time) {
		host := ""
		if u, perr := url.Parse(rawURL); perr == nil {
			host = u.Host
		}
		if err != nil {
			f.logger.Warn("fetch source",
				"host", host,
				"url", rawURL,
				"code", docqa.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Info("fetch source",
			"host", host,
			"url", rawURL,
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
