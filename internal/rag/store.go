package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
)

// Store wraps a chromem-go collection of book summaries. Documents are
// embedded as "Title: <t>\n\nSummary: <s>" with the title kept in metadata
// so retrieval results can be grouped per book.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// Document is one indexable book entry.
type Document struct {
	ID      string
	Title   string
	Content string
}

// Result is a single retrieval hit.
type Result struct {
	Title      string
	Content    string
	Similarity float32
}

// OpenAIEmbedding returns the embedding function used for both ingestion
// and queries (text-embedding-3-small, cosine space).
func OpenAIEmbedding(apiKey string) chromem.EmbeddingFunc {
	return chromem.NewEmbeddingFuncOpenAI(apiKey, chromem.EmbeddingModelOpenAI3Small)
}

// Open opens (or creates) a persistent store at path.
func Open(path, collectionName string, embed chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector db at %s: %w", path, err)
	}
	return newStore(db, collectionName, embed)
}

// NewInMemory creates a non-persistent store. Used by tests.
func NewInMemory(collectionName string, embed chromem.EmbeddingFunc) (*Store, error) {
	return newStore(chromem.NewDB(), collectionName, embed)
}

func newStore(db *chromem.DB, collectionName string, embed chromem.EmbeddingFunc) (*Store, error) {
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", collectionName, err)
	}
	return &Store{db: db, collection: collection}, nil
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Upsert adds documents to the collection.
func (s *Store) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	converted := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		converted = append(converted, chromem.Document{
			ID:       d.ID,
			Content:  d.Content,
			Metadata: map[string]string{"title": d.Title},
		})
	}

	if err := s.collection.AddDocuments(ctx, converted, 1); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Query returns up to n documents similar to the query, best first.
// n is clamped to the collection size; an empty collection yields no results.
func (s *Store) Query(ctx context.Context, query string, n int) ([]Result, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if n > count {
		n = count
	}

	hits, err := s.collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		title := strings.TrimSpace(hit.Metadata["title"])
		if title == "" {
			title = "Untitled"
		}
		results = append(results, Result{
			Title:      title,
			Content:    hit.Content,
			Similarity: hit.Similarity,
		})
	}
	return results, nil
}
