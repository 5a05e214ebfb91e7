package docsystem

import (
	"context"

	"branchwrite/internal/domain/models/docsystem"
)

// BookRepository defines data access operations for books
type BookRepository interface {
	// Create creates the book directory with an empty documents/ subtree and persists it
	Create(ctx context.Context, book *docsystem.Book) error

	// Save writes config, document list and current-document marker
	Save(ctx context.Context, book *docsystem.Book) error

	// Load reads a book, degrading optional artifacts to empty values
	Load(ctx context.Context, id string) (*docsystem.Book, error)

	// List returns every parsable book config, most recently modified first
	List(ctx context.Context) ([]docsystem.BookConfig, error)

	// Delete removes the book directory; absent ids are not an error
	Delete(ctx context.Context, id string) error
}
