package docsystem

import (
	"time"
)

// Document types
const (
	DocTypeChapter = "chapter"
	DocTypeSection = "section"
	DocTypeNote    = "note"
)

// Document statuses
const (
	StatusDraft  = "draft"
	StatusReview = "review"
	StatusFinal  = "final"
)

// DocumentConfig describes one book-scoped document. It is stored both in the
// book's documents.json and as the document's own metadata.json.
type DocumentConfig struct {
	ID             string    `json:"id"`
	BookID         string    `json:"book_id"`
	Title          string    `json:"title"`
	Order          uint32    `json:"order"` // 1-based, never renumbered
	DocType        string    `json:"doc_type"`
	CreatedAt      time.Time `json:"created_at"`
	LastModified   time.Time `json:"last_modified"`
	WordCount      uint32    `json:"word_count"`
	CharacterCount uint32    `json:"character_count"`
	Status         string    `json:"status"`
}
