package docqa

import (
	"context"
	"regexp"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-()]{7,}`)
)

// ExtractEmails returns all email addresses in text, in order of appearance.
func ExtractEmails(text string) []string {
	return emailRe.FindAllString(text, -1)
}

// ExtractPhoneNumbers returns all phone-number-like sequences in text.
func ExtractPhoneNumbers(text string) []string {
	return phoneRe.FindAllString(text, -1)
}

// Entity labels.
const (
	LabelPerson   = "PERSON"
	LabelOrg      = "ORG"
	LabelGPE      = "GPE"
	LabelLocation = "LOC"
	LabelDate     = "DATE"
)

// Entity is a named entity found in text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityExtractor finds named entities in text.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)
}
