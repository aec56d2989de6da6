package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docqa"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying failed attempts with exponential backoff
// (1s, 2s, 4s). ENOTFOUND and EINVALID failures are not retried.
// The logger, if not nil, records each retry.
func FetchWithRetry(ctx context.Context, fetcher docqa.Fetcher, url string, logger *slog.Logger) (string, error) {
	return FetchWithRetryDelays(ctx, fetcher, url, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
func FetchWithRetryDelays(ctx context.Context, fetcher docqa.Fetcher, url string, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if code := docqa.ErrorCode(err); code == docqa.ENOTFOUND || code == docqa.EINVALID {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
