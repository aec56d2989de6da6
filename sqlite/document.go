package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/docqa"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docqa.DocumentService = (*DocumentService)(nil)

// DocumentService implements docqa.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// ReplaceDocuments deletes the corpus documents and stores docs in order,
// all in one transaction. Returns ENOTFOUND if the corpus does not exist.
func (s *DocumentService) ReplaceDocuments(ctx context.Context, corpusID string, docs []*docqa.Document) error {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM corpora WHERE id = ?", corpusID).Scan(&exists)
	if err == sql.ErrNoRows {
		return docqa.Errorf(docqa.ENOTFOUND, "corpus not found")
	} else if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE corpus_id = ?", corpusID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, corpus_id, doc_id, source, ext, text, content_hash, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, doc := range docs {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), corpusID, doc.ID, doc.Source, doc.Ext,
			doc.Text, hashContent(doc.Text), i); err != nil {
			return fmt.Errorf("failed to store document %s: %w", doc.ID, err)
		}
	}

	return tx.Commit()
}

// FindDocuments retrieves a corpus' documents ordered by position.
func (s *DocumentService) FindDocuments(ctx context.Context, corpusID string) ([]*docqa.StoredDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, corpus_id, doc_id, source, ext, text, content_hash, position
		FROM documents
		WHERE corpus_id = ?
		ORDER BY position ASC
	`, corpusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docqa.StoredDocument
	for rows.Next() {
		var doc docqa.StoredDocument
		if err := rows.Scan(&doc.ID, &doc.CorpusID, &doc.Document.ID, &doc.Source, &doc.Ext,
			&doc.Text, &doc.ContentHash, &doc.Position); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocumentsByCorpus removes all documents for a corpus.
func (s *DocumentService) DeleteDocumentsByCorpus(ctx context.Context, corpusID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE corpus_id = ?", corpusID)
	return err
}
