package services

import (
	"encoding/json"
	"os"

	"libris/internal/models"
)

const (
	summariesMissing = "Local summaries not found."
	titleNotFound    = "Title not found in local summaries."
)

// SummaryStore answers full-summary lookups against book_summaries.json.
// The file is re-read per lookup so edits are picked up without a restart.
type SummaryStore struct {
	path string
}

func NewSummaryStore(path string) *SummaryStore {
	return &SummaryStore{path: path}
}

// GetSummaryByTitle returns the full summary for an exact book title,
// falling back to a whitespace-trimmed match. Misses return a fixed
// sentinel string rather than an error so the text can flow straight into
// a tool result.
func (s *SummaryStore) GetSummaryByTitle(title string) string {
	db := s.load()
	if len(db) == 0 {
		return summariesMissing
	}
	if summary, ok := db[title]; ok {
		return summary
	}
	if summary, ok := db[trimmed(title)]; ok {
		return summary
	}
	return titleNotFound
}

func (s *SummaryStore) load() map[string]string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var books []models.Book
	if err := json.Unmarshal(b, &books); err != nil {
		return nil
	}

	db := make(map[string]string, len(books))
	for _, book := range books {
		if book.Title != "" && book.Summary != "" {
			db[book.Title] = book.Summary
		}
	}
	return db
}
