package docqa

import "context"

// Asker answers natural language questions from a supplied context.
type Asker interface {
	// Ask answers question using only the given passages.
	// Returns EINVALID if the question or passages are empty.
	Ask(ctx context.Context, question, passages string) (string, error)
}

// TokenCounter measures how much of a model's context window text consumes.
// FitPassages uses it to trim answer context to a budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
