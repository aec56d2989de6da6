package gemini

import (
	"context"

	"github.com/fwojciec/docqa"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docqa.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures answer context offline with the local Gemini
// tokenizer, so fitting passages to a budget costs no API calls.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model. An empty model selects
// DefaultModel. Returns EINVALID if the tokenizer does not know the model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, docqa.WrapError(docqa.EINVALID, err, "no local tokenizer for model %q", model)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose vocabulary is used for counting.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens text occupies as a single user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, docqa.WrapError(docqa.EINTERNAL, err, "count tokens")
	}
	return int(result.TotalTokens), nil
}
