package handler

import "net/http"

// RegisterRoutes mounts the store API on mux (Go 1.22+ method patterns)
func RegisterRoutes(mux *http.ServeMux, projects *ProjectHandler, books *BookHandler, docs *DocumentHandler) {
	// Health check
	mux.HandleFunc("GET /health", docs.HealthCheck)

	// Project routes
	mux.HandleFunc("GET /api/projects", projects.ListProjects)
	mux.HandleFunc("POST /api/projects", projects.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projects.GetProject)
	mux.HandleFunc("PUT /api/projects/{id}", projects.SaveProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projects.DeleteProject)
	mux.HandleFunc("PUT /api/projects/{id}/content", projects.UpdateContent)
	mux.HandleFunc("GET /api/projects/{id}/stats", projects.GetStats)
	mux.HandleFunc("GET /api/projects/{id}/unsaved", projects.HasUnsavedChanges)
	mux.HandleFunc("POST /api/projects/{id}/export", projects.ExportProject)
	mux.HandleFunc("GET /api/projects/{id}/export.zip", projects.ExportArchive)

	// Commit routes
	mux.HandleFunc("GET /api/projects/{id}/commits", projects.ListCommits)
	mux.HandleFunc("POST /api/projects/{id}/commits", projects.CreateCommit)
	mux.HandleFunc("GET /api/projects/{id}/commits/{commitId}", projects.Checkout)
	mux.HandleFunc("POST /api/projects/{id}/commits/{commitId}/restore", projects.Restore)
	mux.HandleFunc("GET /api/projects/{id}/diff", projects.Diff)

	// Book routes
	mux.HandleFunc("GET /api/books", books.ListBooks)
	mux.HandleFunc("POST /api/books", books.CreateBook)
	mux.HandleFunc("GET /api/books/{id}", books.GetBook)
	mux.HandleFunc("PUT /api/books/{id}", books.SaveBook)
	mux.HandleFunc("DELETE /api/books/{id}", books.DeleteBook)
	mux.HandleFunc("PATCH /api/books/{id}/current-document", books.SetCurrentDocument)

	// Document routes
	mux.HandleFunc("GET /api/books/{id}/documents", docs.ListDocuments)
	mux.HandleFunc("POST /api/books/{id}/documents", docs.CreateDocument)
	mux.HandleFunc("POST /api/books/{id}/documents/import", docs.ImportDocument)
	mux.HandleFunc("POST /api/books/{id}/documents/import-archive", docs.ImportArchive)
	mux.HandleFunc("GET /api/books/{id}/documents/{docId}/content", docs.GetContent)
	mux.HandleFunc("PUT /api/books/{id}/documents/{docId}/content", docs.SaveContent)
	mux.HandleFunc("DELETE /api/books/{id}/documents/{docId}", docs.DeleteDocument)
}
