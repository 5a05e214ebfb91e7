package docsystem

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"branchwrite/internal/config"
	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	"branchwrite/internal/domain/repositories"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
	"branchwrite/internal/domain/services"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
	"branchwrite/internal/service/docsystem/converter"
	"branchwrite/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const untitledDocument = "Untitled"

// documentService implements the DocumentService interface
type documentService struct {
	docRepo    docsysRepo.DocumentRepository
	bookRepo   docsysRepo.BookRepository
	txManager  repositories.TransactionManager
	analyzer   services.ContentAnalyzer
	converters *converter.Registry
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	bookRepo docsysRepo.BookRepository,
	txManager repositories.TransactionManager,
	analyzer services.ContentAnalyzer,
	converters *converter.Registry,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		bookRepo:   bookRepo,
		txManager:  txManager,
		analyzer:   analyzer,
		converters: converters,
		logger:     logger,
	}
}

// CreateDocument creates an empty document at the end of the book
func (s *documentService) CreateDocument(ctx context.Context, req *docsysSvc.CreateDocumentRequest) (*models.DocumentConfig, error) {
	if req.DocType == "" {
		req.DocType = models.DocTypeChapter
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var doc *models.DocumentConfig
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.createLocked(ctx, req.BookID, strings.TrimSpace(req.Title), req.DocType, models.StatusDraft, "")
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"book_id", doc.BookID,
		"order", doc.Order,
	)
	return doc, nil
}

// ImportDocument converts a file to Markdown and creates a document from it.
// Front matter may set title, doc_type and status. Without a title the first
// "# " heading is used, then the filename.
func (s *documentService) ImportDocument(ctx context.Context, bookID, filename string, data []byte) (*models.DocumentConfig, error) {
	if err := validateID("book", bookID); err != nil {
		return nil, err
	}
	if len(data) > config.MaxImportSize {
		return nil, fmt.Errorf("%w: import exceeds %d bytes", domain.ErrValidation, config.MaxImportSize)
	}

	imp, err := s.prepareImport(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	var doc *models.DocumentConfig
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.createLocked(ctx, bookID, imp.title, imp.docType, imp.status, imp.body)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document imported",
		"id", doc.ID,
		"book_id", bookID,
		"filename", filename,
		"word_count", doc.WordCount,
	)
	return doc, nil
}

// ImportArchive imports each supported zip entry as its own document.
// Entries are processed in name order so "01-opening.md" lands before
// "02-storm.md". Unsupported types are skipped and a failing entry is
// recorded without stopping the rest.
func (s *documentService) ImportArchive(ctx context.Context, bookID string, data []byte) (*docsysSvc.ImportResult, error) {
	if err := validateID("book", bookID); err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid zip archive: %v", domain.ErrValidation, err)
	}

	// Fail fast on a missing book instead of once per entry
	if _, err := s.loadBook(ctx, bookID); err != nil {
		return nil, err
	}

	entries := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			entries = append(entries, f)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	result := &docsysSvc.ImportResult{
		Errors:    []docsysSvc.ImportError{},
		Documents: []docsysSvc.ImportedDocument{},
	}

	for _, entry := range entries {
		result.Summary.TotalFiles++

		if !s.converters.Supports(entry.Name) {
			s.logger.Debug("skipping unsupported archive entry", "file", entry.Name)
			result.Summary.Skipped++
			continue
		}

		doc, err := s.importEntry(ctx, bookID, entry)
		if err != nil {
			s.logger.Warn("archive entry not imported",
				"book_id", bookID,
				"file", entry.Name,
				"error", err,
			)
			result.Summary.Failed++
			result.Errors = append(result.Errors, docsysSvc.ImportError{File: entry.Name, Error: err.Error()})
			continue
		}

		result.Summary.Created++
		result.Documents = append(result.Documents, docsysSvc.ImportedDocument{
			File:  entry.Name,
			ID:    doc.ID,
			Title: doc.Title,
			Order: doc.Order,
		})
	}

	s.logger.Info("archive imported",
		"book_id", bookID,
		"created", result.Summary.Created,
		"skipped", result.Summary.Skipped,
		"failed", result.Summary.Failed,
		"total_files", result.Summary.TotalFiles,
	)
	return result, nil
}

// importEntry reads one archive entry and imports it
func (s *documentService) importEntry(ctx context.Context, bookID string, entry *zip.File) (*models.DocumentConfig, error) {
	if entry.UncompressedSize64 > config.MaxImportSize {
		return nil, fmt.Errorf("%w: entry exceeds %d bytes", domain.ErrValidation, config.MaxImportSize)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open entry: %v", domain.ErrValidation, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, config.MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read entry: %v", domain.ErrValidation, err)
	}

	return s.ImportDocument(ctx, bookID, path.Base(entry.Name), data)
}

// importedFile is a converted file ready to become a document
type importedFile struct {
	title   string
	docType string
	status  string
	body    string
}

// prepareImport converts data, splits off front matter and settles the
// document's title, type and status
func (s *documentService) prepareImport(ctx context.Context, filename string, data []byte) (*importedFile, error) {
	markdown, err := s.converters.Convert(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	raw, body, err := utils.ParseFrontmatter([]byte(markdown))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	meta, err := utils.ValidateImportMetadata(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	imp := &importedFile{
		title:   importTitle(meta, body, filename),
		docType: models.DocTypeChapter,
		status:  models.StatusDraft,
		body:    body,
	}
	if meta.DocType != nil {
		imp.docType = *meta.DocType
	}
	if meta.Status != nil {
		imp.status = *meta.Status
	}

	err = validation.Errors{
		"title":    validation.Validate(imp.title, validation.Length(1, config.MaxDocumentTitleLength)),
		"doc_type": validation.Validate(imp.docType, validation.In(docTypes...)),
		"status":   validation.Validate(imp.status, validation.In(docStatuses...)),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return imp, nil
}

// createLocked performs the two-entity create. The document's own files are
// written first, then the book's list is updated. A failure in the second
// step leaves an orphaned document directory that the book does not list;
// making the pair atomic would need a write-ahead log or a staging directory
// renamed into place.
func (s *documentService) createLocked(ctx context.Context, bookID, title, docType, status, content string) (*models.DocumentConfig, error) {
	book, err := s.bookRepo.Load(ctx, bookID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &models.DocumentConfig{
		ID:             uuid.NewString(),
		BookID:         bookID,
		Title:          title,
		Order:          nextOrder(book.Documents),
		DocType:        docType,
		CreatedAt:      now,
		LastModified:   now,
		WordCount:      uint32(s.analyzer.CountWords(content)),
		CharacterCount: uint32(s.analyzer.CountCharacters(content)),
		Status:         status,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	if content != "" {
		if err := s.docRepo.SaveContent(ctx, bookID, doc.ID, content); err != nil {
			return nil, err
		}
	}

	book.Documents = append(book.Documents, *doc)
	book.Config.LastModified = now
	if err := s.bookRepo.Save(ctx, book); err != nil {
		s.logger.Error("document files written but book list not updated",
			"book_id", bookID,
			"document_id", doc.ID,
			"error", err,
		)
		return nil, err
	}

	return doc, nil
}

// LoadContent returns the document body
func (s *documentService) LoadContent(ctx context.Context, bookID, docID string) (string, error) {
	if err := validateIDs("book", bookID, "document", docID); err != nil {
		return "", err
	}

	var content string
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		content, err = s.docRepo.LoadContent(ctx, bookID, docID)
		return err
	})
	if err != nil {
		return "", err
	}

	return content, nil
}

// SaveContent overwrites the body, then refreshes the counts in the
// document's metadata when it has any. The book's list is not touched.
func (s *documentService) SaveContent(ctx context.Context, bookID, docID, content string) error {
	if err := validateIDs("book", bookID, "document", docID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.SaveContent(ctx, bookID, docID, content); err != nil {
			return err
		}

		meta, err := s.docRepo.LoadMetadata(ctx, bookID, docID)
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("document has no metadata, counts not updated",
				"book_id", bookID,
				"document_id", docID,
			)
			return nil
		}
		if err != nil {
			return err
		}

		meta.WordCount = uint32(s.analyzer.CountWords(content))
		meta.CharacterCount = uint32(s.analyzer.CountCharacters(content))
		meta.LastModified = time.Now().UTC()
		return s.docRepo.SaveMetadata(ctx, meta)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("document content saved",
		"book_id", bookID,
		"document_id", docID,
		"bytes", len(content),
	)
	return nil
}

// ListDocuments returns the book's document list as stored
func (s *documentService) ListDocuments(ctx context.Context, bookID string) ([]models.DocumentConfig, error) {
	if err := validateID("book", bookID); err != nil {
		return nil, err
	}

	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return book.Documents, nil
}

// DeleteDocument removes the document's directory, then drops it from the
// book's list and clears the book's current document if it pointed here.
// Same ordering as create: a failed book save leaves a listed entry whose
// directory is already gone.
func (s *documentService) DeleteDocument(ctx context.Context, bookID, docID string) error {
	if err := validateIDs("book", bookID, "document", docID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.Delete(ctx, bookID, docID); err != nil {
			return err
		}

		book, err := s.bookRepo.Load(ctx, bookID)
		if err != nil {
			return err
		}

		if i := book.FindDocument(docID); i >= 0 {
			book.Documents = append(book.Documents[:i], book.Documents[i+1:]...)
		}
		if book.CurrentDocumentID != nil && *book.CurrentDocumentID == docID {
			book.CurrentDocumentID = nil
		}
		book.Config.LastModified = time.Now().UTC()

		return s.bookRepo.Save(ctx, book)
	})
	if err != nil {
		return err
	}

	s.logger.Info("document deleted",
		"id", docID,
		"book_id", bookID,
	)
	return nil
}

// loadBook loads a book under the store lock
func (s *documentService) loadBook(ctx context.Context, bookID string) (*models.Book, error) {
	var book *models.Book
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		book, err = s.bookRepo.Load(ctx, bookID)
		return err
	})
	return book, err
}

// nextOrder returns one past the highest order in use. Orders are never
// renumbered, so gaps left by deletions stay.
func nextOrder(docs []models.DocumentConfig) uint32 {
	var highest uint32
	for i := range docs {
		if docs[i].Order > highest {
			highest = docs[i].Order
		}
	}
	return highest + 1
}

// importTitle picks the front matter title, then the first level-one
// heading, then the filename without its extension
func importTitle(meta *utils.ImportMetadata, body, filename string) string {
	if meta.Title != nil {
		if title := strings.TrimSpace(*meta.Title); title != "" {
			return title
		}
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			if title := strings.TrimSpace(line[2:]); title != "" {
				return title
			}
		}
	}

	base := path.Base(filepath.ToSlash(filename))
	if stem := utils.NormalizeName(strings.TrimSuffix(base, path.Ext(base))); filename != "" && stem != "" {
		return stem
	}
	return untitledDocument
}

// validateCreateRequest validates a create document request
func (s *documentService) validateCreateRequest(req *docsysSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.BookID, validation.Required, entityIDRule),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxDocumentTitleLength),
			notBlankRule,
		),
		validation.Field(&req.DocType, validation.In(docTypes...)),
	)
}
