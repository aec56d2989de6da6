// Package load turns files, folders and web pages into prepared documents.
package load

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docqa"
	qahttp "github.com/fwojciec/docqa/http"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files loaded at once from a folder.
const DefaultConcurrency = 4

// Ensure Loader implements docqa.DocumentLoader at compile time.
var _ docqa.DocumentLoader = (*Loader)(nil)

// Loader loads documents from local files and remote pages.
type Loader struct {
	Fetcher     docqa.Fetcher
	Extractors  []docqa.Extractor // tried in order until one finds content
	Converter   docqa.TextConverter
	Files       map[string]docqa.FileExtractor // by extension; text formats are read directly
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration // nil uses the fetch defaults
}

// LoadFile loads a single supported file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*docqa.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !docqa.IsSupportedExt(ext) {
		return nil, docqa.Errorf(docqa.EINVALID, "unsupported file type %q (supported: %s)", ext, strings.Join(docqa.SupportedExts, ", "))
	}

	raw, err := l.readFile(ctx, path, ext)
	if err != nil {
		return nil, err
	}

	return &docqa.Document{
		ID:     filepath.Base(path),
		Source: path,
		Ext:    ext,
		Text:   docqa.PrepareText(raw, ext),
	}, nil
}

func (l *Loader) readFile(ctx context.Context, path, ext string) (string, error) {
	if x, ok := l.Files[ext]; ok {
		return x.ExtractText(ctx, path)
	}
	if ext != docqa.ExtText && ext != docqa.ExtMD {
		return "", docqa.Errorf(docqa.EINTERNAL, "no extractor configured for %s files", ext)
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", docqa.Errorf(docqa.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}

// LoadURL fetches a web page and keeps the text of its main content.
func (l *Loader) LoadURL(ctx context.Context, rawURL string) (*docqa.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, docqa.Errorf(docqa.EINVALID, "invalid URL %q", rawURL)
	}

	delays := l.RetryDelays
	if delays == nil {
		delays = qahttp.DefaultRetryDelays()
	}
	html, err := qahttp.FetchWithRetryDelays(ctx, l.Fetcher, rawURL, l.Logger, delays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	text, err := l.Converter.Text(l.mainContent(rawURL, html))
	if err != nil {
		return nil, err
	}

	return &docqa.Document{
		ID:     rawURL,
		Source: rawURL,
		Ext:    docqa.ExtHTML,
		Text:   docqa.PrepareText(text, docqa.ExtHTML),
	}, nil
}

// mainContent returns the HTML of the first successful extraction, or the
// whole page when every extractor fails.
func (l *Loader) mainContent(rawURL, html string) string {
	for i, x := range l.Extractors {
		res, err := x.Extract(html)
		if err == nil && strings.TrimSpace(res.ContentHTML) != "" {
			return res.ContentHTML
		}
		if l.Logger != nil {
			l.Logger.Debug("extractor found no content", "url", rawURL, "extractor", i, "err", err)
		}
	}
	return html
}

// LoadFolder loads every supported file directly inside dir, ordered by
// file name. Any failing file fails the whole folder.
func (l *Loader) LoadFolder(ctx context.Context, dir string) ([]*docqa.Document, error) {
	paths, err := ListFolder(dir)
	if err != nil {
		return nil, err
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	docs := make([]*docqa.Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			doc, err := l.LoadFile(ctx, path)
			if err != nil {
				return fmt.Errorf("load %s: %w", filepath.Base(path), err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListFolder returns the supported files directly inside dir, sorted by name.
// Returns ENOTFOUND if dir is missing or holds no supported files.
func ListFolder(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "folder not found: %s", dir)
	} else if err != nil {
		return nil, docqa.WrapError(docqa.EINVALID, err, "cannot read folder %s", dir)
	}

	// ReadDir returns entries sorted by file name.
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !docqa.IsSupportedExt(strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "no documents found in %s with extensions %s", dir, strings.Join(docqa.SupportedExts, ", "))
	}
	return paths, nil
}
