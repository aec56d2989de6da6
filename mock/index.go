package mock

import (
	"context"

	"github.com/fwojciec/docqa"
)

var _ docqa.Index = (*Index)(nil)

// Index is a mock implementation of docqa.Index.
type Index struct {
	BuildFromDocsFn func(ctx context.Context, docs []*docqa.Document, minLen int) error
	SearchFn        func(ctx context.Context, query string, topK int) ([]docqa.SearchResult, error)
	SaveFn          func(path string) error
	LoadFn          func(path string) error
	ResetFn         func()
	LenFn           func() int
	DimensionFn     func() int
}

func (i *Index) BuildFromDocs(ctx context.Context, docs []*docqa.Document, minLen int) error {
	return i.BuildFromDocsFn(ctx, docs, minLen)
}

func (i *Index) Search(ctx context.Context, query string, topK int) ([]docqa.SearchResult, error) {
	return i.SearchFn(ctx, query, topK)
}

func (i *Index) Save(path string) error {
	return i.SaveFn(path)
}

func (i *Index) Load(path string) error {
	return i.LoadFn(path)
}

func (i *Index) Reset() {
	i.ResetFn()
}

func (i *Index) Len() int {
	return i.LenFn()
}

func (i *Index) Dimension() int {
	return i.DimensionFn()
}
