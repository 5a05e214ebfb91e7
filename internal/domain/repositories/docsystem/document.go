package docsystem

import (
	"context"

	"branchwrite/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for the files a
// book-scoped document owns. The parent book's document list is managed
// through BookRepository.
type DocumentRepository interface {
	// Create writes the document directory, an empty content file,
	// metadata and the reserved commits/ directory
	Create(ctx context.Context, doc *docsystem.DocumentConfig) error

	// LoadContent returns "" when the content file is absent
	LoadContent(ctx context.Context, bookID, docID string) (string, error)

	// SaveContent overwrites the content file
	SaveContent(ctx context.Context, bookID, docID, content string) error

	// LoadMetadata returns domain.ErrNotFound when metadata.json is absent
	LoadMetadata(ctx context.Context, bookID, docID string) (*docsystem.DocumentConfig, error)

	// SaveMetadata overwrites metadata.json
	SaveMetadata(ctx context.Context, doc *docsystem.DocumentConfig) error

	// Delete removes the document directory; absent ids are not an error
	Delete(ctx context.Context, bookID, docID string) error
}
