package load_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/load"
	"github.com/fwojciec/docqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads text files directly", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "notes.txt", "  First   line \n\n\nSecond line  ")

		l := &load.Loader{}
		doc, err := l.LoadFile(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "notes.txt", doc.ID)
		assert.Equal(t, path, doc.Source)
		assert.Equal(t, docqa.ExtText, doc.Ext)
		assert.Equal(t, "First line\nSecond line", doc.Text)
	})

	t.Run("uses the extractor registered for the extension", func(t *testing.T) {
		t.Parallel()
		var gotPath string
		l := &load.Loader{Files: map[string]docqa.FileExtractor{
			docqa.ExtDOCX: &mock.FileExtractor{
				ExtractTextFn: func(_ context.Context, path string) (string, error) {
					gotPath = path
					return "Para one\nPara two", nil
				},
			},
		}}

		doc, err := l.LoadFile(context.Background(), "/docs/Report.DOCX")

		require.NoError(t, err)
		assert.Equal(t, "/docs/Report.DOCX", gotPath)
		assert.Equal(t, "Report.DOCX", doc.ID)
		assert.Equal(t, docqa.ExtDOCX, doc.Ext)
		assert.Equal(t, "Para one\nPara two", doc.Text)
	})

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		t.Parallel()
		l := &load.Loader{}
		_, err := l.LoadFile(context.Background(), "/docs/image.png")
		assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err))
	})

	t.Run("missing text file is not found", func(t *testing.T) {
		t.Parallel()
		l := &load.Loader{}
		_, err := l.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
		assert.Equal(t, docqa.ENOTFOUND, docqa.ErrorCode(err))
	})

	t.Run("missing extractor is internal error", func(t *testing.T) {
		t.Parallel()
		l := &load.Loader{}
		_, err := l.LoadFile(context.Background(), "/docs/paper.pdf")
		assert.Equal(t, docqa.EINTERNAL, docqa.ErrorCode(err))
	})
}

func TestLoader_LoadURL(t *testing.T) {
	t.Parallel()

	const page = "<html><body><nav>menu</nav><article><p>Hello</p></article></body></html>"

	fetcher := func() *mock.Fetcher {
		return &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) { return page, nil },
		}
	}

	t.Run("converts the first extracted content", func(t *testing.T) {
		t.Parallel()
		var converted string
		l := &load.Loader{
			Fetcher: fetcher(),
			Extractors: []docqa.Extractor{
				&mock.Extractor{ExtractFn: func(string) (*docqa.ExtractResult, error) {
					return nil, docqa.Errorf(docqa.ENOTFOUND, "no content")
				}},
				&mock.Extractor{ExtractFn: func(string) (*docqa.ExtractResult, error) {
					return &docqa.ExtractResult{ContentHTML: "<p>Hello</p>"}, nil
				}},
			},
			Converter: &mock.TextConverter{TextFn: func(html string) (string, error) {
				converted = html
				return "  Hello  \n\n world", nil
			}},
		}

		doc, err := l.LoadURL(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<p>Hello</p>", converted)
		assert.Equal(t, "https://example.com/a", doc.ID)
		assert.Equal(t, "https://example.com/a", doc.Source)
		assert.Equal(t, docqa.ExtHTML, doc.Ext)
		assert.Equal(t, "Hello\nworld", doc.Text)
	})

	t.Run("falls back to the whole page", func(t *testing.T) {
		t.Parallel()
		var converted string
		l := &load.Loader{
			Fetcher: fetcher(),
			Extractors: []docqa.Extractor{
				&mock.Extractor{ExtractFn: func(string) (*docqa.ExtractResult, error) {
					return &docqa.ExtractResult{ContentHTML: "   "}, nil
				}},
			},
			Converter: &mock.TextConverter{TextFn: func(html string) (string, error) {
				converted = html
				return "menu\nHello", nil
			}},
		}

		_, err := l.LoadURL(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, page, converted)
	})

	t.Run("rejects invalid URLs", func(t *testing.T) {
		t.Parallel()
		l := &load.Loader{Fetcher: fetcher()}
		for _, u := range []string{"ftp://example.com", "not a url", "https://"} {
			_, err := l.LoadURL(context.Background(), u)
			assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err), u)
		}
	})

	t.Run("fetch failure is returned after retries", func(t *testing.T) {
		t.Parallel()
		calls := 0
		l := &load.Loader{
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", errors.New("connection reset")
			}},
			RetryDelays: []time.Duration{time.Millisecond},
		}

		_, err := l.LoadURL(context.Background(), "https://example.com/a")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, 2, calls)
	})
}

func TestLoader_LoadFolder(t *testing.T) {
	t.Parallel()

	t.Run("loads supported files in name order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "b.txt", "Bravo")
		writeFile(t, dir, "a.md", "Alpha")
		writeFile(t, dir, "c.png", "ignored")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

		l := &load.Loader{Concurrency: 2}
		docs, err := l.LoadFolder(context.Background(), dir)

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a.md", docs[0].ID)
		assert.Equal(t, "Alpha", docs[0].Text)
		assert.Equal(t, "b.txt", docs[1].ID)
		assert.Equal(t, "Bravo", docs[1].Text)
	})

	t.Run("a failing file fails the folder", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "Alpha")
		writeFile(t, dir, "b.pdf", "%PDF")

		l := &load.Loader{Files: map[string]docqa.FileExtractor{
			docqa.ExtPDF: &mock.FileExtractor{ExtractTextFn: func(context.Context, string) (string, error) {
				return "", docqa.Errorf(docqa.EINVALID, "not a PDF")
			}},
		}}
		_, err := l.LoadFolder(context.Background(), dir)

		assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err))
		assert.Contains(t, err.Error(), "b.pdf")
	})

	t.Run("folder without documents is not found", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "image.png", "x")

		l := &load.Loader{}
		_, err := l.LoadFolder(context.Background(), dir)
		assert.Equal(t, docqa.ENOTFOUND, docqa.ErrorCode(err))
	})

	t.Run("missing folder is not found", func(t *testing.T) {
		t.Parallel()
		l := &load.Loader{}
		_, err := l.LoadFolder(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.Equal(t, docqa.ENOTFOUND, docqa.ErrorCode(err))
	})
}
