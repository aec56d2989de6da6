package mock

import (
	"context"

	"github.com/fwojciec/docqa"
)

var _ docqa.CorpusService = (*CorpusService)(nil)

// CorpusService is a mock implementation of docqa.CorpusService.
type CorpusService struct {
	UpsertCorpusFn   func(ctx context.Context, corpus *docqa.Corpus) error
	FindCorpusByIDFn func(ctx context.Context, id string) (*docqa.Corpus, error)
	FindCorporaFn    func(ctx context.Context) ([]*docqa.Corpus, error)
	DeleteCorpusFn   func(ctx context.Context, id string) error
}

func (s *CorpusService) UpsertCorpus(ctx context.Context, corpus *docqa.Corpus) error {
	return s.UpsertCorpusFn(ctx, corpus)
}

func (s *CorpusService) FindCorpusByID(ctx context.Context, id string) (*docqa.Corpus, error) {
	return s.FindCorpusByIDFn(ctx, id)
}

func (s *CorpusService) FindCorpora(ctx context.Context) ([]*docqa.Corpus, error) {
	return s.FindCorporaFn(ctx)
}

func (s *CorpusService) DeleteCorpus(ctx context.Context, id string) error {
	return s.DeleteCorpusFn(ctx, id)
}
