package filestore

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
)

// FileDocumentRepository implements the DocumentRepository interface on
// <root>/books/<book_id>/documents/<doc_id>/
type FileDocumentRepository struct {
	paths  *Paths
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) docsysRepo.DocumentRepository {
	return &FileDocumentRepository{
		paths:  config.Paths,
		logger: config.Logger,
	}
}

func (r *FileDocumentRepository) docDir(bookID, docID string) (string, error) {
	if err := checkID("book", bookID); err != nil {
		return "", err
	}
	if err := checkID("document", docID); err != nil {
		return "", err
	}
	return r.paths.DocumentDir(bookID, docID), nil
}

// Create writes the document's own files: empty content, metadata and the
// reserved commits/ directory
func (r *FileDocumentRepository) Create(ctx context.Context, doc *models.DocumentConfig) error {
	dir, err := r.docDir(doc.BookID, doc.ID)
	if err != nil {
		return err
	}

	if err := makeDir(dir, "document directory"); err != nil {
		return err
	}
	if err := writeArtifact(dir, DocContentArtifact, nil); err != nil {
		return err
	}
	if err := encodeArtifact(dir, DocMetadataArtifact, doc); err != nil {
		return err
	}
	// Reserved for per-document history; nothing reads it yet
	return makeDir(filepath.Join(dir, docCommitsDir), "document commits directory")
}

// LoadContent returns the document body, or "" when the content file is absent
func (r *FileDocumentRepository) LoadContent(ctx context.Context, bookID, docID string) (string, error) {
	dir, err := r.docDir(bookID, docID)
	if err != nil {
		return "", err
	}

	res, err := readArtifact(dir, DocContentArtifact)
	if err != nil {
		return "", err
	}
	return string(res.Data), nil
}

// SaveContent overwrites the document body
func (r *FileDocumentRepository) SaveContent(ctx context.Context, bookID, docID, content string) error {
	dir, err := r.docDir(bookID, docID)
	if err != nil {
		return err
	}
	if err := requireDir(dir, "document", docID); err != nil {
		return err
	}
	return writeArtifact(dir, DocContentArtifact, []byte(content))
}

// LoadMetadata reads metadata.json. A missing file maps to domain.ErrNotFound.
func (r *FileDocumentRepository) LoadMetadata(ctx context.Context, bookID, docID string) (*models.DocumentConfig, error) {
	dir, err := r.docDir(bookID, docID)
	if err != nil {
		return nil, err
	}

	var doc models.DocumentConfig
	if _, err := decodeArtifact(dir, DocMetadataArtifact, &doc); err != nil {
		var ioErr *domain.IOError
		if errors.As(err, &ioErr) && isNotExist(ioErr.Err) {
			return nil, domain.NewNotFound("document metadata", docID)
		}
		return nil, err
	}
	return &doc, nil
}

// SaveMetadata overwrites metadata.json
func (r *FileDocumentRepository) SaveMetadata(ctx context.Context, doc *models.DocumentConfig) error {
	dir, err := r.docDir(doc.BookID, doc.ID)
	if err != nil {
		return err
	}
	if err := requireDir(dir, "document", doc.ID); err != nil {
		return err
	}
	return encodeArtifact(dir, DocMetadataArtifact, doc)
}

// Delete removes the document directory
func (r *FileDocumentRepository) Delete(ctx context.Context, bookID, docID string) error {
	dir, err := r.docDir(bookID, docID)
	if err != nil {
		return err
	}
	return removeDir(dir, "document")
}
