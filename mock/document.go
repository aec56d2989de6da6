package mock

import (
	"context"

	"github.com/fwojciec/docqa"
)

var (
	_ docqa.DocumentService = (*DocumentService)(nil)
	_ docqa.DocumentLoader  = (*DocumentLoader)(nil)
)

// DocumentService is a mock implementation of docqa.DocumentService.
type DocumentService struct {
	ReplaceDocumentsFn        func(ctx context.Context, corpusID string, docs []*docqa.Document) error
	FindDocumentsFn           func(ctx context.Context, corpusID string) ([]*docqa.StoredDocument, error)
	DeleteDocumentsByCorpusFn func(ctx context.Context, corpusID string) error
}

func (s *DocumentService) ReplaceDocuments(ctx context.Context, corpusID string, docs []*docqa.Document) error {
	return s.ReplaceDocumentsFn(ctx, corpusID, docs)
}

func (s *DocumentService) FindDocuments(ctx context.Context, corpusID string) ([]*docqa.StoredDocument, error) {
	return s.FindDocumentsFn(ctx, corpusID)
}

func (s *DocumentService) DeleteDocumentsByCorpus(ctx context.Context, corpusID string) error {
	return s.DeleteDocumentsByCorpusFn(ctx, corpusID)
}

// DocumentLoader is a mock implementation of docqa.DocumentLoader.
type DocumentLoader struct {
	LoadFileFn   func(ctx context.Context, path string) (*docqa.Document, error)
	LoadURLFn    func(ctx context.Context, url string) (*docqa.Document, error)
	LoadFolderFn func(ctx context.Context, dir string) ([]*docqa.Document, error)
}

func (l *DocumentLoader) LoadFile(ctx context.Context, path string) (*docqa.Document, error) {
	return l.LoadFileFn(ctx, path)
}

func (l *DocumentLoader) LoadURL(ctx context.Context, url string) (*docqa.Document, error) {
	return l.LoadURLFn(ctx, url)
}

func (l *DocumentLoader) LoadFolder(ctx context.Context, dir string) ([]*docqa.Document, error) {
	return l.LoadFolderFn(ctx, dir)
}
