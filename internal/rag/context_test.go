package rag

import (
	"strings"
	"testing"
)

func TestBuildContext_FormatsNumberedBlocks(t *testing.T) {
	results := []Result{
		{Title: "Dune", Content: "Title: Dune\n\nSummary: Desert planet politics.", Similarity: 0.91},
		{Title: "1984", Content: "Title: 1984\n\nSummary: Surveillance dystopia.", Similarity: 0.84},
	}

	ctx, titles := BuildContext(results, 3)

	if !strings.Contains(ctx, "[1] Title: Dune\nSummary: Desert planet politics.\nSimilarity: 0.910") {
		t.Errorf("first block malformed:\n%s", ctx)
	}
	if !strings.Contains(ctx, "[2] Title: 1984\nSummary: Surveillance dystopia.\nSimilarity: 0.840") {
		t.Errorf("second block malformed:\n%s", ctx)
	}
	if len(titles) != 2 || titles[0] != "Dune" || titles[1] != "1984" {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestBuildContext_DeduplicatesByTitle(t *testing.T) {
	results := []Result{
		{Title: "Dune", Content: "Title: Dune\n\nSummary: First chunk.", Similarity: 0.9},
		{Title: "Dune", Content: "Title: Dune\n\nSummary: Second chunk.", Similarity: 0.8},
		{Title: "1984", Content: "Title: 1984\n\nSummary: Dystopia.", Similarity: 0.7},
	}

	_, titles := BuildContext(results, 3)

	if len(titles) != 2 {
		t.Fatalf("expected 2 unique titles, got %v", titles)
	}
}

func TestBuildContext_RespectsLimit(t *testing.T) {
	results := []Result{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
		{Title: "C", Content: "c"},
	}

	_, titles := BuildContext(results, 2)

	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %v", titles)
	}
}

func TestBuildContext_Empty(t *testing.T) {
	ctx, titles := BuildContext(nil, 3)
	if ctx != "" || titles != nil {
		t.Errorf("expected empty context, got %q / %v", ctx, titles)
	}
}

func TestBuildContext_KeepsUnframedContent(t *testing.T) {
	results := []Result{{Title: "Dune", Content: "plain text without framing", Similarity: 0.5}}

	ctx, _ := BuildContext(results, 1)

	if !strings.Contains(ctx, "Summary: plain text without framing") {
		t.Errorf("unframed content should pass through verbatim:\n%s", ctx)
	}
}
