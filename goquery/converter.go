// Package goquery converts HTML into plain paragraph text using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docqa"
	"golang.org/x/net/html"
)

// Ensure TextConverter implements docqa.TextConverter at compile time.
var _ docqa.TextConverter = (*TextConverter)(nil)

// skipped matches elements that never contribute text.
const skipped = "head, script, style, noscript, template, svg, iframe"

// blocks start and end a line of output.
var blocks = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "caption": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// TextConverter renders HTML as text with one block element per line.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Text returns the visible text of rawHTML. Each block element becomes its
// own line and whitespace inside a line is collapsed.
func (c *TextConverter) Text(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", docqa.Errorf(docqa.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(skipped).Remove()

	w := &lineWriter{}
	for _, n := range doc.Nodes {
		w.walk(n)
	}
	w.flush()

	return strings.Join(w.lines, "\n"), nil
}

type lineWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *lineWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blocks[n.Data]
	if block {
		w.flush()
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child)
	}
	if block {
		w.flush()
	}
}

func (w *lineWriter) flush() {
	line := strings.Join(strings.Fields(w.cur.String()), " ")
	w.cur.Reset()
	if line != "" {
		w.lines = append(w.lines, line)
	}
}
