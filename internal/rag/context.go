package rag

import (
	"fmt"
	"strings"
)

// BuildContext compacts retrieval results into numbered blocks for the
// completion prompt: de-dupes by title (results are best-first, so the
// first hit per book wins), keeps at most maxItems entries, and reports
// the similarity of each. Returns the context text and the ordered titles.
func BuildContext(results []Result, maxItems int) (string, []string) {
	if len(results) == 0 || maxItems <= 0 {
		return "", nil
	}

	seen := make(map[string]bool, len(results))
	var blocks []string
	var titles []string

	for _, res := range results {
		if seen[res.Title] {
			continue
		}
		seen[res.Title] = true

		blocks = append(blocks, fmt.Sprintf("[%d] Title: %s\nSummary: %s\nSimilarity: %.3f",
			len(blocks)+1, res.Title, summaryFromDocument(res.Content, res.Title), res.Similarity))
		titles = append(titles, res.Title)

		if len(blocks) >= maxItems {
			break
		}
	}

	return strings.Join(blocks, "\n\n"), titles
}

// summaryFromDocument strips the "Title: …\n\nSummary: " framing that
// ingestion adds for embedding, leaving the bare summary text.
func summaryFromDocument(content, title string) string {
	framed := fmt.Sprintf("Title: %s\n\nSummary: ", title)
	if rest, ok := strings.CutPrefix(content, framed); ok {
		return rest
	}
	return content
}
