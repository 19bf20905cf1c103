package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"libris/internal/rag"
)

type stubRetriever struct {
	results []rag.Result
	err     error
	lastN   int
}

func (s *stubRetriever) Query(ctx context.Context, query string, n int) ([]rag.Result, error) {
	s.lastN = n
	return s.results, s.err
}

type stubCompletion struct {
	reply      string
	err        error
	called     bool
	gotContext string
	gotTitles  []string
}

func (s *stubCompletion) RecommendBook(ctx context.Context, query, ragContext string, titles []string) (string, error) {
	s.called = true
	s.gotContext = ragContext
	s.gotTitles = titles
	return s.reply, s.err
}

func TestRecommendService_EmptyRetrievalSkipsLLM(t *testing.T) {
	llm := &stubCompletion{reply: "should not be used"}
	svc := NewRecommendService(&stubRetriever{}, llm, 3, 3)

	answer, err := svc.Answer(context.Background(), "space opera")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != noMatchFallback {
		t.Errorf("expected fallback text, got %q", answer)
	}
	if llm.called {
		t.Error("completion client should not be called with an empty context")
	}
}

func TestRecommendService_PassesContextAndTitles(t *testing.T) {
	retriever := &stubRetriever{results: []rag.Result{
		{Title: "Dune", Content: "Title: Dune\n\nSummary: Desert planet politics.", Similarity: 0.9},
	}}
	llm := &stubCompletion{reply: "recommendation"}
	svc := NewRecommendService(retriever, llm, 3, 3)

	answer, err := svc.Answer(context.Background(), "political sci-fi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "recommendation" {
		t.Errorf("expected llm reply, got %q", answer)
	}
	if retriever.lastN != 3 {
		t.Errorf("expected retrieval of 3, got %d", retriever.lastN)
	}
	if !strings.Contains(llm.gotContext, "[1] Title: Dune") {
		t.Errorf("context not built: %q", llm.gotContext)
	}
	if len(llm.gotTitles) != 1 || llm.gotTitles[0] != "Dune" {
		t.Errorf("unexpected titles: %v", llm.gotTitles)
	}
}

func TestRecommendService_RetrievalError(t *testing.T) {
	svc := NewRecommendService(&stubRetriever{err: errors.New("index offline")}, &stubCompletion{}, 3, 3)

	if _, err := svc.Answer(context.Background(), "anything"); err == nil {
		t.Fatal("expected retrieval error to propagate")
	}
}

func TestFallbackAnswer(t *testing.T) {
	got := fallbackAnswer("", "No tool result.")
	if !strings.Contains(got, "**Title:** Unknown") || !strings.Contains(got, "No tool result.") {
		t.Errorf("unexpected fallback: %q", got)
	}
}
