package docqa

import (
	"regexp"
	"strings"
)

var (
	inlineSpaceRe  = regexp.MustCompile(`[ \t]+`)
	blankLinesRe   = regexp.MustCompile(`\n{2,}`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]["')\]]?$`)
	upperStartRe   = regexp.MustCompile(`^[A-Z]`)
	lineBreakNorms = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// CleanPreserveNewlines cleans extracted text while keeping paragraph breaks.
// Lines are trimmed, runs of spaces and tabs collapse to one space, and runs
// of blank lines collapse to a single newline.
func CleanPreserveNewlines(text string) string {
	text = lineBreakNorms.Replace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = inlineSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	}

	text = strings.Join(lines, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// NormalizePDFParagraphs turns PDF layout line breaks into spaces while
// keeping real paragraph breaks. The result separates paragraphs with "\n".
//
// A blank line always ends a paragraph. A line ending in a hyphen is joined
// to the next line without the hyphen. A line ending a sentence followed by
// a line starting with an uppercase letter starts a new paragraph.
func NormalizePDFParagraphs(raw string) string {
	lines := strings.Split(lineBreakNorms.Replace(raw), "\n")

	var paras []string
	var buf []string

	flush := func() {
		if len(buf) > 0 {
			paras = append(paras, strings.TrimSpace(strings.Join(buf, " ")))
			buf = buf[:0]
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if n := len(buf); n > 0 && strings.HasSuffix(buf[n-1], "-") {
			buf[n-1] = strings.TrimSuffix(buf[n-1], "-") + line
			continue
		}

		if n := len(buf); n > 0 && sentenceEndRe.MatchString(buf[n-1]) && upperStartRe.MatchString(line) {
			flush()
		}
		buf = append(buf, line)
	}
	flush()

	out := make([]string, 0, len(paras))
	for _, p := range paras {
		p = strings.TrimSpace(whitespaceRe.ReplaceAllString(p, " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

// PrepareText prepares raw extracted text for segmentation. PDF text has its
// layout line breaks normalized first.
func PrepareText(raw, ext string) string {
	if ext == ExtPDF {
		raw = NormalizePDFParagraphs(raw)
	}
	return CleanPreserveNewlines(raw)
}
