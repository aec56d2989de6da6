// Package pdf extracts plain text from PDF files with ledongthuc/pdf.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/docqa"
	"github.com/ledongthuc/pdf"
)

// Ensure Extractor implements docqa.FileExtractor at compile time.
var _ docqa.FileExtractor = (*Extractor)(nil)

// Extractor reads the text layer of PDF files page by page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text of every page joined by newlines. Layout line
// breaks are kept; callers normalize them.
// Returns ENOTFOUND if path does not exist and EINVALID if it is not a readable PDF.
func (e *Extractor) ExtractText(ctx context.Context, path string) (text string, err error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", docqa.Errorf(docqa.ENOTFOUND, "file not found: %s", path)
	}

	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", docqa.Errorf(docqa.EINVALID, "malformed PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", docqa.WrapError(docqa.EINVALID, err, "cannot read PDF %s", path)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d of %s: %w", i, path, err)
		}
		pages = append(pages, strings.TrimRight(s, "\n"))
	}

	return strings.Join(pages, "\n"), nil
}
