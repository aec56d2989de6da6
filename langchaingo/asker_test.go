package langchaingo_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/langchaingo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel answers every prompt with a fixed reply and records the prompt.
type fakeModel struct {
	reply  string
	prompt string
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, p := range messages[0].Parts {
		if tc, ok := p.(llms.TextContent); ok {
			m.prompt = tc.Text
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestAsker_Ask(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "  On mats.\n"}
	asker := langchaingo.NewAsker(model)

	answer, err := asker.Ask(context.Background(), "Where do cats sleep?", "[a.txt | P0]\nCats sleep on mats.")

	require.NoError(t, err)
	assert.Equal(t, "On mats.", answer)
	assert.Contains(t, model.prompt, "Cats sleep on mats.")
	assert.Contains(t, model.prompt, "Question: Where do cats sleep?")
}

func TestAsker_Ask_Validates(t *testing.T) {
	t.Parallel()

	asker := langchaingo.NewAsker(&fakeModel{})

	_, err := asker.Ask(context.Background(), "", "ctx")
	assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err))

	_, err = asker.Ask(context.Background(), "q", " ")
	assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err))
}
