package filestore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
)

// FileBookRepository implements the BookRepository interface on
// <root>/books/<id>/
type FileBookRepository struct {
	paths  *Paths
	logger *slog.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(config *RepositoryConfig) docsysRepo.BookRepository {
	return &FileBookRepository{
		paths:  config.Paths,
		logger: config.Logger,
	}
}

// Create creates the book directory and its documents/ subtree, then persists the book
func (r *FileBookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := checkID("book", book.Config.ID); err != nil {
		return err
	}

	if err := makeDir(r.paths.BookDir(book.Config.ID), "book directory"); err != nil {
		return err
	}
	if err := makeDir(r.paths.DocumentsDir(book.Config.ID), "documents directory"); err != nil {
		return err
	}

	return r.Save(ctx, book)
}

// Save writes config and document list, then syncs the current-document
// marker: written when set, removed when unset.
func (r *FileBookRepository) Save(ctx context.Context, book *models.Book) error {
	id := book.Config.ID
	if err := checkID("book", id); err != nil {
		return err
	}

	dir := r.paths.BookDir(id)
	if err := requireDir(dir, "book", id); err != nil {
		return err
	}

	if err := encodeArtifact(dir, BookConfigArtifact, book.Config); err != nil {
		return err
	}

	documents := book.Documents
	if documents == nil {
		documents = []models.DocumentConfig{}
	}
	if err := encodeArtifact(dir, BookDocumentsArtifact, documents); err != nil {
		return err
	}

	if book.CurrentDocumentID != nil {
		return writeArtifact(dir, BookCurrentArtifact, []byte(*book.CurrentDocumentID))
	}

	marker := filepath.Join(dir, BookCurrentArtifact.Name)
	if err := os.Remove(marker); err != nil && !isNotExist(err) {
		return &domain.IOError{Op: "remove " + BookCurrentArtifact.What, Path: marker, Err: err}
	}

	return nil
}

// Load reads a book. The config is required; the document list and the
// current-document marker degrade to empty / nil when absent.
func (r *FileBookRepository) Load(ctx context.Context, id string) (*models.Book, error) {
	if err := checkID("book", id); err != nil {
		return nil, err
	}

	dir := r.paths.BookDir(id)
	if err := requireDir(dir, "book", id); err != nil {
		return nil, err
	}

	book := &models.Book{Documents: []models.DocumentConfig{}}

	if _, err := decodeArtifact(dir, BookConfigArtifact, &book.Config); err != nil {
		return nil, err
	}

	if _, err := decodeArtifact(dir, BookDocumentsArtifact, &book.Documents); err != nil {
		return nil, err
	}
	if book.Documents == nil {
		book.Documents = []models.DocumentConfig{}
	}

	marker, err := readArtifact(dir, BookCurrentArtifact)
	if err != nil {
		return nil, err
	}
	if current := strings.TrimSpace(string(marker.Data)); marker.Present && current != "" {
		book.CurrentDocumentID = &current
	}

	return book, nil
}

// List retrieves every parsable book config, most recently modified first
func (r *FileBookRepository) List(ctx context.Context) ([]models.BookConfig, error) {
	return listConfigs(r.paths.BooksDir(), BookConfigArtifact, r.logger,
		func(c *models.BookConfig) time.Time { return c.LastModified })
}

// Delete removes the book directory including all of its documents
func (r *FileBookRepository) Delete(ctx context.Context, id string) error {
	if err := checkID("book", id); err != nil {
		return err
	}
	return removeDir(r.paths.BookDir(id), "book")
}
