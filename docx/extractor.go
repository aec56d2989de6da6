// Package docx extracts paragraph text from Word documents.
package docx

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docqa"
)

const documentPart = "word/document.xml"

// Ensure Extractor implements docqa.FileExtractor at compile time.
var _ docqa.FileExtractor = (*Extractor)(nil)

// Extractor reads the paragraphs of the main document part of a DOCX file.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns one line per Word paragraph, in document order.
// Returns ENOTFOUND if path does not exist and EINVALID if it is not a DOCX file.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", docqa.Errorf(docqa.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return "", docqa.WrapError(docqa.EINVALID, err, "cannot read DOCX %s", path)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == documentPart {
			return readDocument(f)
		}
	}
	return "", docqa.Errorf(docqa.EINVALID, "%s has no %s", path, documentPart)
}

func readDocument(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return ParagraphText(rc)
}

// ParagraphText parses WordprocessingML and returns its paragraphs
// joined by newlines. Tabs and line breaks inside a paragraph are kept.
func ParagraphText(r io.Reader) (string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return "", docqa.WrapError(docqa.EINVALID, err, "parsing document XML")
	}
	root := doc.Root()
	if root == nil {
		return "", docqa.Errorf(docqa.EINVALID, "empty document XML")
	}

	var paras []string
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Space == "w" && el.Tag == "p" {
			paras = append(paras, runText(el))
			return
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)

	return strings.Join(paras, "\n"), nil
}

func runText(p *etree.Element) string {
	var sb strings.Builder
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Space == "w" {
			switch el.Tag {
			case "t":
				sb.WriteString(el.Text())
				return
			case "tab":
				sb.WriteString("\t")
				return
			case "br", "cr":
				sb.WriteString("\n")
				return
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(p)
	return sb.String()
}
