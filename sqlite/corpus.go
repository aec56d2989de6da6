package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/docqa"
)

// Compile-time interface verification.
var _ docqa.CorpusService = (*CorpusService)(nil)

// CorpusService implements docqa.CorpusService using SQLite.
type CorpusService struct {
	db *DB
}

// NewCorpusService creates a new CorpusService.
func NewCorpusService(db *DB) *CorpusService {
	return &CorpusService{db: db}
}

// UpsertCorpus creates or replaces the catalog entry for corpus.ID.
// BuiltAt defaults to the current time.
func (s *CorpusService) UpsertCorpus(ctx context.Context, corpus *docqa.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return err
	}
	if corpus.BuiltAt.IsZero() {
		corpus.BuiltAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corpora (id, kind, source, model, dimension, min_par_len, chunk_count, artifact_path, built_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			source = excluded.source,
			model = excluded.model,
			dimension = excluded.dimension,
			min_par_len = excluded.min_par_len,
			chunk_count = excluded.chunk_count,
			artifact_path = excluded.artifact_path,
			built_at = excluded.built_at
	`, corpus.ID, string(corpus.Kind), corpus.Source, corpus.Model, corpus.Dimension, corpus.MinParLen, corpus.ChunkCount,
		corpus.ArtifactPath, corpus.BuiltAt.UTC().Format(time.RFC3339))

	return err
}

// FindCorpusByID retrieves a corpus by ID.
func (s *CorpusService) FindCorpusByID(ctx context.Context, id string) (*docqa.Corpus, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, source, model, dimension, min_par_len, chunk_count, artifact_path, built_at
		FROM corpora
		WHERE id = ?
	`, id)

	corpus, err := scanCorpus(row)
	if err == sql.ErrNoRows {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "corpus not found")
	}
	return corpus, err
}

// FindCorpora retrieves all catalog entries, most recently built first.
func (s *CorpusService) FindCorpora(ctx context.Context) ([]*docqa.Corpus, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, source, model, dimension, min_par_len, chunk_count, artifact_path, built_at
		FROM corpora
		ORDER BY built_at DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corpora []*docqa.Corpus
	for rows.Next() {
		corpus, err := scanCorpus(rows)
		if err != nil {
			return nil, err
		}
		corpora = append(corpora, corpus)
	}

	return corpora, rows.Err()
}

// DeleteCorpus removes a corpus. Its documents are removed by cascade.
func (s *CorpusService) DeleteCorpus(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM corpora WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docqa.Errorf(docqa.ENOTFOUND, "corpus not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCorpus(row scanner) (*docqa.Corpus, error) {
	var corpus docqa.Corpus
	var kind, builtAt string

	if err := row.Scan(&corpus.ID, &kind, &corpus.Source, &corpus.Model, &corpus.Dimension, &corpus.MinParLen,
		&corpus.ChunkCount, &corpus.ArtifactPath, &builtAt); err != nil {
		return nil, err
	}
	corpus.Kind = docqa.CorpusKind(kind)

	var err error
	corpus.BuiltAt, err = parseRFC3339(builtAt, "built_at")
	if err != nil {
		return nil, err
	}

	return &corpus, nil
}
