package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"branchwrite/internal/config"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
	"branchwrite/internal/httputil"
)

// DocumentHandler handles book-scoped document HTTP requests
type DocumentHandler struct {
	docService docsysSvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsysSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

type contentResponse struct {
	Content string `json:"content"`
}

// ListDocuments returns the book's document list
// GET /api/books/{id}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.ListDocuments(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// CreateDocument appends a new empty document to the book
// POST /api/books/{id}/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.BookID = r.PathValue("id")

	doc, err := h.docService.CreateDocument(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ImportDocument creates a document from a raw request body. The optional
// filename query parameter selects the converter (.md, .txt, .html).
// POST /api/books/{id}/documents/import?filename=<name>
func (h *DocumentHandler) ImportDocument(w http.ResponseWriter, r *http.Request) {
	data, ok := readImportBody(w, r, config.MaxImportSize)
	if !ok {
		return
	}

	doc, err := h.docService.ImportDocument(r.Context(), r.PathValue("id"), r.URL.Query().Get("filename"), data)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ImportArchive creates one document per supported file in a zip body
// POST /api/books/{id}/documents/import-archive
func (h *DocumentHandler) ImportArchive(w http.ResponseWriter, r *http.Request) {
	data, ok := readImportBody(w, r, config.MaxImportArchiveSize)
	if !ok {
		return
	}

	result, err := h.docService.ImportArchive(r.Context(), r.PathValue("id"), data)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// readImportBody reads a raw upload, writing a 413 past limit
func readImportBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return nil, false
		}
		httputil.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	return data, true
}

// GetContent returns the document body
// GET /api/books/{id}/documents/{docId}/content
func (h *DocumentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.docService.LoadContent(r.Context(), r.PathValue("id"), r.PathValue("docId"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contentResponse{Content: content})
}

// SaveContent overwrites the document body
// PUT /api/books/{id}/documents/{docId}/content
func (h *DocumentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var req contentResponse
	if !parseBody(w, r, &req) {
		return
	}

	if err := h.docService.SaveContent(r.Context(), r.PathValue("id"), r.PathValue("docId"), req.Content); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocument removes a document from the book
// DELETE /api/books/{id}/documents/{docId}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.docService.DeleteDocument(r.Context(), r.PathValue("id"), r.PathValue("docId")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
