package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/docqa"
	"google.golang.org/genai"
)

// Ensure EntityExtractor implements docqa.EntityExtractor at compile time.
var _ docqa.EntityExtractor = (*EntityExtractor)(nil)

var entityLabels = []string{
	docqa.LabelPerson,
	docqa.LabelOrg,
	docqa.LabelGPE,
	docqa.LabelLocation,
	docqa.LabelDate,
}

// EntityExtractor finds named entities with a JSON-mode Gemini call.
type EntityExtractor struct {
	client *genai.Client
	model  string
}

// NewEntityExtractor creates a new EntityExtractor. An empty model selects DefaultModel.
func NewEntityExtractor(client *genai.Client, model string) *EntityExtractor {
	if model == "" {
		model = DefaultModel
	}
	return &EntityExtractor{client: client, model: model}
}

// ExtractEntities returns the entities found in text.
func (x *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]docqa.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	result, err := x.client.Models.GenerateContent(ctx, x.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		BuildEntityConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docqa.Errorf(docqa.EINTERNAL, "gemini returned nil result")
	}

	return ParseEntities(result.Text())
}

// BuildEntityConfig returns the GenerateContentConfig for entity extraction.
func BuildEntityConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "Extract named entities from the user's text. Use PERSON for people, ORG for organizations, GPE for countries, cities and states, LOC for other locations and DATE for dates. Copy each entity exactly as written.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text":  {Type: genai.TypeString},
					"label": {Type: genai.TypeString, Enum: entityLabels},
				},
				Required: []string{"text", "label"},
			},
		},
	}
}

// ParseEntities decodes a JSON entity list, dropping blank entries and
// unknown labels.
func ParseEntities(raw string) ([]docqa.Entity, error) {
	var parsed []docqa.Entity
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, docqa.WrapError(docqa.EINTERNAL, err, "decode entities")
	}

	entities := make([]docqa.Entity, 0, len(parsed))
	for _, e := range parsed {
		e.Text = strings.TrimSpace(e.Text)
		e.Label = strings.ToUpper(strings.TrimSpace(e.Label))
		if e.Text == "" || !knownLabel(e.Label) {
			continue
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func knownLabel(label string) bool {
	for _, l := range entityLabels {
		if l == label {
			return true
		}
	}
	return false
}
