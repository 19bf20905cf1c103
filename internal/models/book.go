package models

// Book is one entry of book_summaries.json.
type Book struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}
