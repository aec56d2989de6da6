package docqa

import "context"

// Fetcher downloads the HTML behind a remote document source.
type Fetcher interface {
	// Fetch returns the body served at url.
	// Returns ENOTFOUND when the page does not exist.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// ExtractResult holds the main content found in an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with navigation,
	// footers and other boilerplate removed.
	ContentHTML string
}

// Extractor isolates the main content of a web page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// TextConverter converts HTML into plain text with one paragraph per line.
type TextConverter interface {
	Text(html string) (string, error)
}

// FileExtractor extracts raw text from a document file.
type FileExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
