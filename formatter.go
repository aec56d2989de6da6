package docqa

import (
	"context"
	"fmt"
	"strings"
)

// FormatPassages formats ranked chunks as question answering context.
// Each passage is labeled with its document and paragraph and passages are
// separated by blank lines.
func FormatPassages(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("[%s | P%d]\n%s", r.Chunk.DocID, r.Chunk.ParagraphID, r.Chunk.Text))
	}

	return strings.Join(parts, "\n\n")
}

// FitPassages returns the longest rank-ordered prefix of results whose
// formatted passages fit within maxTokens. A nil counter or a non-positive
// budget keeps every result.
func FitPassages(ctx context.Context, counter TokenCounter, results []SearchResult, maxTokens int) ([]SearchResult, error) {
	if counter == nil || maxTokens <= 0 {
		return results, nil
	}

	total := 0
	for i, r := range results {
		n, err := counter.CountTokens(ctx, FormatPassages([]SearchResult{r}))
		if err != nil {
			return nil, err
		}
		if total+n > maxTokens {
			return results[:i], nil
		}
		total += n
	}
	return results, nil
}
