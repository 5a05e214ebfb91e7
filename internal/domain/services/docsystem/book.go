package docsystem

import (
	"context"

	"branchwrite/internal/domain/models/docsystem"
)

// CreateBookRequest represents a request to create a book
type CreateBookRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
}

// BookService defines business logic operations for books
type BookService interface {
	// CreateBook allocates an id and an empty documents/ tree, and persists it
	CreateBook(ctx context.Context, req *CreateBookRequest) (*docsystem.Book, error)

	// SaveBook persists config, document list and current-document marker
	SaveBook(ctx context.Context, book *docsystem.Book) error

	// GetBook loads a book by ID
	GetBook(ctx context.Context, id string) (*docsystem.Book, error)

	// ListBooks returns all readable book configs, most recently modified first
	ListBooks(ctx context.Context) ([]docsystem.BookConfig, error)

	// DeleteBook removes a book and all its documents; unknown ids succeed
	DeleteBook(ctx context.Context, id string) error

	// SetCurrentDocument points the book at one of its documents; nil clears it
	SetCurrentDocument(ctx context.Context, bookID string, docID *string) (*docsystem.Book, error)
}
