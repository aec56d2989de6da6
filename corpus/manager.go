// Package corpus opens corpus indexes, reusing cached artifacts when they
// still match the source and embedding model.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/fs"
)

// Manager builds, caches and catalogs corpus indexes.
type Manager struct {
	Index    docqa.Index
	Loader   docqa.DocumentLoader
	Catalog  docqa.CorpusService
	Store    docqa.DocumentService
	Model    string // embedding model of Index's embedder
	CacheDir string
	Logger   *slog.Logger
}

// Open makes Index ready to search src. A cached artifact is loaded when the
// catalog entry matches the model and minimum paragraph length; otherwise,
// or when rebuild is set, documents are loaded, indexed and cached again.
// An artifact that disagrees with its catalog entry is never left loaded.
func (m *Manager) Open(ctx context.Context, src docqa.Source, minLen int, rebuild bool) (*docqa.Corpus, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	src.Location = fs.NormalizeLocation(src.Kind, src.Location)
	id := fs.CorpusIdentity(src.Kind, src.Location)
	path := fs.CachePath(m.CacheDir, id)

	if !rebuild {
		corpus, err := m.loadCached(ctx, id, path, minLen)
		if err == nil {
			m.logger().Info("loaded cached index", "corpus", id, "chunks", corpus.ChunkCount)
			return corpus, nil
		}
		m.logCacheMiss(id, path, err)
	}

	return m.build(ctx, src, id, path, minLen)
}

func (m *Manager) loadCached(ctx context.Context, id, path string, minLen int) (*docqa.Corpus, error) {
	corpus, err := m.Catalog.FindCorpusByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if corpus.Model != m.Model {
		return nil, docqa.Errorf(docqa.EINVALID, "cache built with model %q, want %q", corpus.Model, m.Model)
	}
	if corpus.MinParLen != minLen {
		return nil, docqa.Errorf(docqa.EINVALID, "cache built with minimum paragraph length %d, want %d", corpus.MinParLen, minLen)
	}
	if err := m.Index.Load(path); err != nil {
		return nil, err
	}
	if m.Index.Len() != corpus.ChunkCount || m.Index.Dimension() != corpus.Dimension {
		err := docqa.Errorf(docqa.ECACHECORRUPT, "cache holds %d chunks of dimension %d, catalog expects %d of %d",
			m.Index.Len(), m.Index.Dimension(), corpus.ChunkCount, corpus.Dimension)
		m.Index.Reset()
		return nil, err
	}
	return corpus, nil
}

// logCacheMiss logs why the cache was not used. Corruption is a warning;
// anything else is an expected miss.
func (m *Manager) logCacheMiss(id, path string, err error) {
	logger := m.logger()
	switch docqa.ErrorCode(err) {
	case docqa.ECACHECORRUPT:
		logger.Warn("cache corrupt, rebuilding", "corpus", id, "path", path, "err", err)
	case docqa.ECACHENOTFOUND:
		logger.Info("no cache found, building", "corpus", id, "path", path)
	case docqa.ENOTFOUND:
		logger.Info("corpus not in catalog, building", "corpus", id)
	case docqa.EINVALID:
		logger.Info("cache is stale, rebuilding", "corpus", id, "reason", docqa.ErrorMessage(err))
	default:
		logger.Warn("cache unavailable, rebuilding", "corpus", id, "err", err)
	}
}

func (m *Manager) build(ctx context.Context, src docqa.Source, id, path string, minLen int) (*docqa.Corpus, error) {
	docs, err := m.LoadDocuments(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := m.Index.BuildFromDocs(ctx, docs, minLen); err != nil {
		return nil, err
	}
	if err := m.Index.Save(path); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}

	corpus := &docqa.Corpus{
		ID:           id,
		Kind:         src.Kind,
		Source:       src.Location,
		Model:        m.Model,
		Dimension:    m.Index.Dimension(),
		MinParLen:    minLen,
		ChunkCount:   m.Index.Len(),
		ArtifactPath: path,
	}
	if err := m.Catalog.UpsertCorpus(ctx, corpus); err != nil {
		return nil, fmt.Errorf("catalog corpus: %w", err)
	}
	if err := m.Store.ReplaceDocuments(ctx, id, docs); err != nil {
		return nil, fmt.Errorf("store documents: %w", err)
	}
	return corpus, nil
}

// LoadDocuments loads the documents of src without indexing them.
func (m *Manager) LoadDocuments(ctx context.Context, src docqa.Source) ([]*docqa.Document, error) {
	switch src.Kind {
	case docqa.CorpusFile:
		doc, err := m.Loader.LoadFile(ctx, src.Location)
		if err != nil {
			return nil, err
		}
		return []*docqa.Document{doc}, nil
	case docqa.CorpusURL:
		doc, err := m.Loader.LoadURL(ctx, src.Location)
		if err != nil {
			return nil, err
		}
		return []*docqa.Document{doc}, nil
	case docqa.CorpusFolder:
		return m.Loader.LoadFolder(ctx, src.Location)
	default:
		return nil, docqa.Errorf(docqa.EINVALID, "unknown corpus kind %q", src.Kind)
	}
}

// Documents returns the stored documents of a cataloged corpus in load order.
func (m *Manager) Documents(ctx context.Context, corpusID string) ([]*docqa.Document, error) {
	stored, err := m.Store.FindDocuments(ctx, corpusID)
	if err != nil {
		return nil, err
	}
	return docqa.Documents(stored), nil
}

// Corpora lists cataloged corpora, most recently built first.
func (m *Manager) Corpora(ctx context.Context) ([]*docqa.Corpus, error) {
	return m.Catalog.FindCorpora(ctx)
}

// Forget removes a corpus' cached artifact and its catalog entry.
// Returns ENOTFOUND if the corpus is not cataloged.
func (m *Manager) Forget(ctx context.Context, id string) error {
	corpus, err := m.Catalog.FindCorpusByID(ctx, id)
	if err != nil {
		return err
	}
	if err := os.Remove(corpus.ArtifactPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache: %w", err)
	}
	return m.Catalog.DeleteCorpus(ctx, id)
}

func (m *Manager) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
