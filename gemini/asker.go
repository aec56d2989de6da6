package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docqa"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used for answers and entity extraction.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements docqa.Asker at compile time.
var _ docqa.Asker = (*Asker)(nil)

// Asker implements docqa.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	model  string
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client *genai.Client, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, model: model}
}

// Ask answers a question from the given passages.
func (a *Asker) Ask(ctx context.Context, question, passages string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", docqa.Errorf(docqa.EINVALID, "question required")
	}
	if strings.TrimSpace(passages) == "" {
		return "", docqa.Errorf(docqa.EINVALID, "no text to answer from")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(question, passages)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docqa.Errorf(docqa.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for question answering.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a user's documents. Answer briefly, quoting the text where possible, and use only the context provided. If the answer is not in the context, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the context and question.
func BuildUserPrompt(question, passages string) string {
	var sb strings.Builder
	sb.WriteString("<context>\n")
	sb.WriteString(passages)
	sb.WriteString("\n</context>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
