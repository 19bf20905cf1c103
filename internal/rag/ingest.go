package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"libris/internal/models"
)

// Documents are upserted in batches so a large corpus does not hold one
// giant embedding request open.
const ingestBatchSize = 64

// LoadBooks reads and validates a book_summaries.json file: a list of
// objects that must each carry non-empty "title" and "summary" keys.
func LoadBooks(path string) ([]models.Book, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var books []models.Book
	if err := json.Unmarshal(b, &books); err != nil {
		return nil, fmt.Errorf("expected a JSON list of {title, summary} items in %s: %w", path, err)
	}

	for i, book := range books {
		if strings.TrimSpace(book.Title) == "" || strings.TrimSpace(book.Summary) == "" {
			return nil, fmt.Errorf("item %d in %s is missing title or summary", i, path)
		}
	}
	return books, nil
}

// IngestBooks embeds and upserts books into the store. Each document is
// the "Title: …\n\nSummary: …" text the retrieval side expects.
func IngestBooks(ctx context.Context, store *Store, books []models.Book) (int, error) {
	docs := make([]Document, 0, len(books))
	for _, book := range books {
		docs = append(docs, Document{
			ID:      uuid.NewString(),
			Title:   book.Title,
			Content: fmt.Sprintf("Title: %s\n\nSummary: %s", book.Title, book.Summary),
		})
	}

	for i := 0; i < len(docs); i += ingestBatchSize {
		end := i + ingestBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := store.Upsert(ctx, docs[i:end]); err != nil {
			return i, err
		}
	}
	return len(docs), nil
}

// IngestDir indexes a data directory: book_summaries.json plus any loose
// .txt or .pdf summary files (file name stem = title). Returns the number
// of documents indexed.
func IngestDir(ctx context.Context, store *Store, dataPath string) (int, error) {
	total := 0

	jsonPath := filepath.Join(dataPath, "book_summaries.json")
	if _, err := os.Stat(jsonPath); err == nil {
		books, err := LoadBooks(jsonPath)
		if err != nil {
			return 0, err
		}
		n, err := IngestBooks(ctx, store, books)
		if err != nil {
			return n, err
		}
		total += n
	}

	err := filepath.WalkDir(dataPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".pdf" {
			return nil
		}

		summary, err := ExtractText(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			return nil
		}

		title := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		n, err := IngestBooks(ctx, store, []models.Book{{Title: title, Summary: summary}})
		if err != nil {
			return err
		}
		total += n
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("failed to walk data directory: %w", err)
	}

	return total, nil
}
