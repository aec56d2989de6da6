// Package readability extracts article content with go-readability. It is
// the fallback when trafilatura finds nothing.
package readability

import (
	"strings"

	"github.com/fwojciec/docqa"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docqa.Extractor at compile time.
var _ docqa.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article content of rawHTML.
// Returns EINVALID for empty input and ENOTFOUND when no article is found.
func (e *Extractor) Extract(rawHTML string) (*docqa.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docqa.Errorf(docqa.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docqa.WrapError(docqa.ENOTFOUND, err, "no article found")
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "no article found")
	}

	return &docqa.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
