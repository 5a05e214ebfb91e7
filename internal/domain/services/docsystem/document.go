package docsystem

import (
	"context"

	"branchwrite/internal/domain/models/docsystem"
)

// DocumentService handles book-scoped document business logic
type DocumentService interface {
	// CreateDocument writes the document's files, then appends it to the book
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docsystem.DocumentConfig, error)

	// ImportDocument converts a .md, .txt or .html file to Markdown and creates a
	// document from it. An empty filename means Markdown.
	ImportDocument(ctx context.Context, bookID, filename string, data []byte) (*docsystem.DocumentConfig, error)

	// ImportArchive imports every supported file of a zip archive, in entry name order
	ImportArchive(ctx context.Context, bookID string, data []byte) (*ImportResult, error)

	// LoadContent returns the body, or "" if it has never been written
	LoadContent(ctx context.Context, bookID, docID string) (string, error)

	// SaveContent overwrites the body and refreshes counts in the document metadata
	SaveContent(ctx context.Context, bookID, docID, content string) error

	// ListDocuments returns the book's document list as stored
	ListDocuments(ctx context.Context, bookID string) ([]docsystem.DocumentConfig, error)

	// DeleteDocument removes the document's files, then its entry in the book
	DeleteDocument(ctx context.Context, bookID, docID string) error
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	BookID  string `json:"book_id"`
	Title   string `json:"title"`
	DocType string `json:"doc_type"` // chapter, section or note; empty means chapter
}
