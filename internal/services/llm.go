package services

import (
	"context"
	"fmt"
	"strings"

	"libris/internal/rag"
)

const systemPrompt = "You are a helpful literary assistant for book recommendations. " +
	"Use ONLY the provided RAG context (titles + summaries) to answer. " +
	"If the context is insufficient, say so briefly. " +
	"Recommend 1-2 books that best match the user's request and explain why, " +
	"referring to themes/characters/plot. " +
	"Answer in the user's language. " +
	"Cite recommendations using the bracketed indices from the RAG context, e.g., [1], [2]."

const noMatchFallback = "I couldn't find any recommendations in my book set for this query. " +
	"Try rephrasing or ask for a theme (e.g., dystopia, adventure, classic)."

const fallbackRationale = "Picked based on highest similarity and thematic match in the RAG context."

// CompletionClient turns a retrieved context into a final recommendation.
// Implementations are provider-specific (OpenAI tool-calling, Gemini
// single completion) but share the output contract: never-empty text.
type CompletionClient interface {
	RecommendBook(ctx context.Context, query, ragContext string, titles []string) (string, error)
}

type retriever interface {
	Query(ctx context.Context, query string, n int) ([]rag.Result, error)
}

// RecommendService runs the retrieval stage and hands the compacted
// context to the completion client.
type RecommendService struct {
	store     retriever
	llm       CompletionClient
	retrieveN int
	contextK  int
}

func NewRecommendService(store retriever, llm CompletionClient, retrieveN, contextK int) *RecommendService {
	return &RecommendService{
		store:     store,
		llm:       llm,
		retrieveN: retrieveN,
		contextK:  contextK,
	}
}

// Answer retrieves similar books and composes a recommendation for the
// user query. An empty retrieval yields the fixed fallback text without
// touching the LLM.
func (s *RecommendService) Answer(ctx context.Context, query string) (string, error) {
	results, err := s.store.Query(ctx, query, s.retrieveN)
	if err != nil {
		return "", fmt.Errorf("retrieval failed: %w", err)
	}

	ragContext, titles := rag.BuildContext(results, s.contextK)
	if strings.TrimSpace(ragContext) == "" {
		return noMatchFallback, nil
	}

	return s.llm.RecommendBook(ctx, query, ragContext, titles)
}

func stageOneUserMessage(ragContext, query string) string {
	return fmt.Sprintf("RAG CONTEXT:\n%s\n\nUSER QUESTION:\n%s", ragContext, query)
}

// fallbackAnswer assembles a final answer locally when the model returns
// nothing usable.
func fallbackAnswer(title, summary string) string {
	if title == "" {
		title = "Unknown"
	}
	return fmt.Sprintf("- **Title:** %s\n- %s\n- %s", title, fallbackRationale, summary)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
