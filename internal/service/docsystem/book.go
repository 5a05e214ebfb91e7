package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"branchwrite/internal/config"
	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	"branchwrite/internal/domain/repositories"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
	"branchwrite/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// bookService implements the BookService interface
type bookService struct {
	bookRepo  docsysRepo.BookRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewBookService creates a new book service
func NewBookService(
	bookRepo docsysRepo.BookRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docsysSvc.BookService {
	return &bookService{
		bookRepo:  bookRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateBook creates a new book with no documents
func (s *bookService) CreateBook(ctx context.Context, req *docsysSvc.CreateBookRequest) (*models.Book, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now().UTC()
	book := &models.Book{
		Config: models.BookConfig{
			ID:           uuid.NewString(),
			Name:         utils.NormalizeName(req.Name),
			Description:  strings.TrimSpace(req.Description),
			Author:       strings.TrimSpace(req.Author),
			Genre:        strings.TrimSpace(req.Genre),
			CreatedAt:    now,
			LastModified: now,
			Tags:         []string{},
			Settings:     models.DefaultBookSettings(),
		},
		Documents: []models.DocumentConfig{},
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.bookRepo.Create(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book created",
		"id", book.Config.ID,
		"name", book.Config.Name,
	)

	return book, nil
}

// SaveBook persists the book exactly as given
func (s *bookService) SaveBook(ctx context.Context, book *models.Book) error {
	if book == nil {
		return fmt.Errorf("%w: book is required", domain.ErrValidation)
	}
	if err := validateID("book", book.Config.ID); err != nil {
		return err
	}

	return s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.bookRepo.Save(ctx, book)
	})
}

// GetBook loads a book by ID
func (s *bookService) GetBook(ctx context.Context, id string) (*models.Book, error) {
	if err := validateID("book", id); err != nil {
		return nil, err
	}

	var book *models.Book
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		book, err = s.bookRepo.Load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return book, nil
}

// ListBooks retrieves all readable book configs
func (s *bookService) ListBooks(ctx context.Context) ([]models.BookConfig, error) {
	var books []models.BookConfig
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		books, err = s.bookRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// DeleteBook removes a book and every document below it
func (s *bookService) DeleteBook(ctx context.Context, id string) error {
	if err := validateID("book", id); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.bookRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("book deleted", "id", id)
	return nil
}

// SetCurrentDocument records which document the editor last had open.
// The book's last_modified is left alone since no content changed.
func (s *bookService) SetCurrentDocument(ctx context.Context, bookID string, docID *string) (*models.Book, error) {
	if err := validateID("book", bookID); err != nil {
		return nil, err
	}
	if docID != nil {
		if err := validateID("document", *docID); err != nil {
			return nil, err
		}
	}

	var book *models.Book
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		book, err = s.bookRepo.Load(ctx, bookID)
		if err != nil {
			return err
		}

		if docID != nil && book.FindDocument(*docID) < 0 {
			return domain.NewNotFound("document", *docID)
		}

		book.CurrentDocumentID = docID
		return s.bookRepo.Save(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("current document set",
		"book_id", bookID,
		"document_id", docID,
	)
	return book, nil
}

// validateCreateRequest validates a create book request
func (s *bookService) validateCreateRequest(req *docsysSvc.CreateBookRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxBookNameLength),
			notBlankRule,
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Author, validation.Length(0, config.MaxAuthorLength)),
		validation.Field(&req.Genre, validation.Length(0, config.MaxGenreLength)),
	)
}
