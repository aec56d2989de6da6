package langchaingo

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docqa"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Ensure Asker implements docqa.Asker at compile time.
var _ docqa.Asker = (*Asker)(nil)

// Asker implements docqa.Asker with a langchaingo chat model.
type Asker struct {
	llm llms.Model
}

// NewAsker wraps a langchaingo model.
func NewAsker(llm llms.Model) *Asker {
	return &Asker{llm: llm}
}

// NewAskerFromConfig creates an Asker for the configured provider.
func NewAskerFromConfig(cfg Config) (*Asker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	switch cfg.Provider {
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(cfg.Token)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		return NewAsker(llm), nil
	default:
		llm, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.BaseURL),
		)
		if err != nil {
			return nil, err
		}
		return NewAsker(llm), nil
	}
}

// Ask answers question from passages.
func (a *Asker) Ask(ctx context.Context, question, passages string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", docqa.Errorf(docqa.EINVALID, "question required")
	}
	if strings.TrimSpace(passages) == "" {
		return "", docqa.Errorf(docqa.EINVALID, "no text to answer from")
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, a.llm, BuildPrompt(question, passages), llms.WithTemperature(0.2))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// BuildPrompt builds a single-turn prompt holding instructions, context and question.
func BuildPrompt(question, passages string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question briefly using only the context below. ")
	sb.WriteString("If the answer is not in the context, say so.\n\n")
	sb.WriteString("<context>\n")
	sb.WriteString(passages)
	sb.WriteString("\n</context>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
