package docqa

import (
	"context"
)

// Supported document extensions.
const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
	ExtHTML = ".html"
	ExtText = ".txt"
	ExtMD   = ".md"
)

// SupportedExts lists the file extensions accepted when loading files and folders.
var SupportedExts = []string{ExtPDF, ExtDOCX, ExtText, ExtMD}

// IsSupportedExt reports whether ext is one of SupportedExts.
func IsSupportedExt(ext string) bool {
	for _, e := range SupportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

// Document represents a loaded document whose text is ready for segmentation.
// Paragraph breaks are preserved as single newline characters.
type Document struct {
	ID     string `json:"id"`     // file basename or URL
	Source string `json:"source"` // full path or URL
	Ext    string `json:"ext"`
	Text   string `json:"text"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.Source == "" {
		return Errorf(EINVALID, "document source required")
	}
	return nil
}

// DocumentLoader turns files, folders and remote pages into prepared documents.
type DocumentLoader interface {
	// LoadFile loads a single PDF, DOCX or plain text file.
	// Returns EINVALID for unsupported extensions.
	LoadFile(ctx context.Context, path string) (*Document, error)

	// LoadURL fetches a remote HTML page and extracts its main text.
	LoadURL(ctx context.Context, url string) (*Document, error)

	// LoadFolder loads every supported file in a folder, in sorted filename order.
	// Returns ENOTFOUND if the folder holds no supported files.
	LoadFolder(ctx context.Context, dir string) ([]*Document, error)
}

// StoredDocument is a document persisted alongside a corpus.
type StoredDocument struct {
	ID          string `json:"id"`
	CorpusID    string `json:"corpusId"`
	Position    int    `json:"position"`
	ContentHash string `json:"contentHash"`
	Document
}

// DocumentService represents a service for managing the documents of a corpus.
type DocumentService interface {
	// ReplaceDocuments deletes the corpus documents and stores docs in order.
	ReplaceDocuments(ctx context.Context, corpusID string, docs []*Document) error

	// FindDocuments retrieves a corpus' documents ordered by position.
	FindDocuments(ctx context.Context, corpusID string) ([]*StoredDocument, error)

	// DeleteDocumentsByCorpus removes all documents for a corpus.
	DeleteDocumentsByCorpus(ctx context.Context, corpusID string) error
}

// Documents unwraps stored documents into plain documents, preserving order.
func Documents(stored []*StoredDocument) []*Document {
	docs := make([]*Document, 0, len(stored))
	for _, s := range stored {
		d := s.Document
		docs = append(docs, &d)
	}
	return docs
}
