package docqa

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Paragraph is a non-empty paragraph with a dense zero-based index among the
// paragraphs that survived length filtering.
type Paragraph struct {
	ID   int
	Text string
}

// Sentence is a sentence with its paragraph index and its index within that paragraph.
type Sentence struct {
	ParagraphID int
	SentenceID  int
	Text        string
}

var sentenceRe = regexp.MustCompile(`[^.!?]+(?:[.!?]+["')\]]*|$)`)

// SegmentParagraphs splits text on newlines and keeps trimmed paragraphs of
// at least minLen characters.
func SegmentParagraphs(text string, minLen int) []Paragraph {
	var paras []Paragraph
	for _, raw := range strings.Split(text, "\n") {
		p := strings.TrimSpace(raw)
		if p == "" || utf8.RuneCountInString(p) < minLen {
			continue
		}
		paras = append(paras, Paragraph{ID: len(paras), Text: p})
	}
	return paras
}

// SegmentSentences splits each paragraph into sentences of at least minLen
// characters. Sentence IDs are dense within their paragraph.
func SegmentSentences(paragraphs []Paragraph, minLen int) []Sentence {
	var sentences []Sentence
	for _, p := range paragraphs {
		id := 0
		for _, raw := range sentenceRe.FindAllString(p.Text, -1) {
			s := strings.TrimSpace(raw)
			if s == "" || utf8.RuneCountInString(s) < minLen {
				continue
			}
			sentences = append(sentences, Sentence{ParagraphID: p.ID, SentenceID: id, Text: s})
			id++
		}
	}
	return sentences
}
