package mock

import (
	"context"

	"github.com/fwojciec/docqa"
)

var (
	_ docqa.Asker        = (*Asker)(nil)
	_ docqa.TokenCounter = (*TokenCounter)(nil)
)

// Asker is a mock implementation of docqa.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question, passages string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question, passages string) (string, error) {
	return a.AskFn(ctx, question, passages)
}

// TokenCounter is a mock implementation of docqa.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
