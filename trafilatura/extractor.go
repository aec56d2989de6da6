// Package trafilatura extracts the main content of web pages with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docqa"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docqa.Extractor at compile time.
var _ docqa.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comment sections are dropped and the
// readability based fallback is enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the main content of rawHTML.
// Returns EINVALID for empty input and ENOTFOUND when no content is found.
func (e *Extractor) Extract(rawHTML string) (*docqa.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docqa.Errorf(docqa.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, docqa.WrapError(docqa.ENOTFOUND, err, "no main content found")
	}
	if result == nil || result.ContentNode == nil {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "no main content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &docqa.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
