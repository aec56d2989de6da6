package main

import (
	"context"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/fwojciec/docqa"
	"github.com/schollz/progressbar/v3"
)

// progressEmbedder shows a progress bar while embedding a corpus. Single
// text calls such as search queries run without one.
type progressEmbedder struct {
	docqa.Embedder
	w io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func (p *progressEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) < 2 {
		return p.Embedder.Embed(ctx, texts)
	}

	bar := newProgressBar(p.w, len(texts), "Embedding paragraphs")
	p.mu.Lock()
	p.bar = bar
	p.mu.Unlock()

	vecs, err := p.Embedder.Embed(ctx, texts)

	p.mu.Lock()
	p.bar = nil
	p.mu.Unlock()
	if err == nil {
		_ = bar.Finish()
	}
	_, _ = io.WriteString(p.w, "\n")
	return vecs, err
}

// add advances the current bar by n embedded texts.
func (p *progressEmbedder) add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(n)
	}
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("paragraphs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
