package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
	"branchwrite/internal/httputil"
)

// BookHandler handles book HTTP requests
type BookHandler struct {
	bookService docsysSvc.BookService
	logger      *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService docsysSvc.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// setCurrentDocumentRequest distinguishes an absent field from an explicit null
type setCurrentDocumentRequest struct {
	DocumentID httputil.OptionalString `json:"document_id"`
}

// ListBooks retrieves all books
// GET /api/books
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.ListBooks(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, books)
}

// CreateBook creates a new book
// POST /api/books
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateBookRequest
	if !parseBody(w, r, &req) {
		return
	}

	book, err := h.bookService.CreateBook(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, book)
}

// GetBook retrieves a book with its document list
// GET /api/books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.GetBook(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}

// SaveBook overwrites a book with the request body
// PUT /api/books/{id}
func (h *BookHandler) SaveBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if !parseBody(w, r, &book) {
		return
	}

	id := r.PathValue("id")
	if book.Config.ID != id {
		handleError(w, h.logger, fmt.Errorf("%w: body id %q does not match path id %q", domain.ErrValidation, book.Config.ID, id))
		return
	}

	if err := h.bookService.SaveBook(r.Context(), &book); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, &book)
}

// DeleteBook deletes a book and its documents
// DELETE /api/books/{id}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.bookService.DeleteBook(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetCurrentDocument sets or clears the book's open document
// PATCH /api/books/{id}/current-document
func (h *BookHandler) SetCurrentDocument(w http.ResponseWriter, r *http.Request) {
	var req setCurrentDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}
	if !req.DocumentID.Present {
		httputil.RespondError(w, http.StatusBadRequest, "document_id is required (use null to clear)")
		return
	}

	book, err := h.bookService.SetCurrentDocument(r.Context(), r.PathValue("id"), req.DocumentID.Value)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}
