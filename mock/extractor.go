package mock

import (
	"context"

	"github.com/fwojciec/docqa"
)

var (
	_ docqa.Fetcher         = (*Fetcher)(nil)
	_ docqa.Extractor       = (*Extractor)(nil)
	_ docqa.TextConverter   = (*TextConverter)(nil)
	_ docqa.FileExtractor   = (*FileExtractor)(nil)
	_ docqa.EntityExtractor = (*EntityExtractor)(nil)
)

// Fetcher is a mock implementation of docqa.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Extractor is a mock implementation of docqa.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docqa.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docqa.ExtractResult, error) {
	return e.ExtractFn(html)
}

// TextConverter is a mock implementation of docqa.TextConverter.
type TextConverter struct {
	TextFn func(html string) (string, error)
}

func (c *TextConverter) Text(html string) (string, error) {
	return c.TextFn(html)
}

// FileExtractor is a mock implementation of docqa.FileExtractor.
type FileExtractor struct {
	ExtractTextFn func(ctx context.Context, path string) (string, error)
}

func (e *FileExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	return e.ExtractTextFn(ctx, path)
}

// EntityExtractor is a mock implementation of docqa.EntityExtractor.
type EntityExtractor struct {
	ExtractEntitiesFn func(ctx context.Context, text string) ([]docqa.Entity, error)
}

func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]docqa.Entity, error) {
	return e.ExtractEntitiesFn(ctx, text)
}
