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

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService docsysSvc.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService docsysSvc.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

type updateContentRequest struct {
	Content string `json:"content"`
}

type exportRequest struct {
	Destination string `json:"destination"`
}

type checkoutResponse struct {
	CommitID string `json:"commit_id"`
	Content  string `json:"content"`
}

type unsavedResponse struct {
	HasUnsavedChanges bool `json:"has_unsaved_changes"`
}

// ListProjects retrieves all projects
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// CreateProject creates a new project
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateProjectRequest
	if !parseBody(w, r, &req) {
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a project with its body and history
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// SaveProject overwrites a project with the request body
// PUT /api/projects/{id}
func (h *ProjectHandler) SaveProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if !parseBody(w, r, &project) {
		return
	}

	id := r.PathValue("id")
	if project.Config.ID != id {
		handleError(w, h.logger, fmt.Errorf("%w: body id %q does not match path id %q", domain.ErrValidation, project.Config.ID, id))
		return
	}

	if err := h.projectService.SaveProject(r.Context(), &project); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, &project)
}

// DeleteProject deletes a project
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportProject writes the export bundle to a directory on the local disk
// POST /api/projects/{id}/export
func (h *ProjectHandler) ExportProject(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !parseBody(w, r, &req) {
		return
	}

	if err := h.projectService.ExportProject(r.Context(), r.PathValue("id"), req.Destination); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportArchive downloads the export bundle as a zip file
// GET /api/projects/{id}/export.zip
func (h *ProjectHandler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	archive, err := h.projectService.ExportArchive(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondAttachment(w, "application/zip", id+".zip", archive)
}

// GetStats returns commit and size counters
// GET /api/projects/{id}/stats
func (h *ProjectHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.projectService.GetStats(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}

// UpdateContent replaces the project's document body
// PUT /api/projects/{id}/content
func (h *ProjectHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req updateContentRequest
	if !parseBody(w, r, &req) {
		return
	}

	project, err := h.projectService.UpdateContent(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project.DocumentMetadata)
}

// ListCommits returns the commit history, newest first
// GET /api/projects/{id}/commits
func (h *ProjectHandler) ListCommits(w http.ResponseWriter, r *http.Request) {
	commits, err := h.projectService.ListCommits(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, commits)
}

// CreateCommit snapshots the current body
// POST /api/projects/{id}/commits
func (h *ProjectHandler) CreateCommit(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CommitRequest
	if !parseBody(w, r, &req) {
		return
	}

	commit, err := h.projectService.Commit(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, commit)
}

// Checkout returns the snapshot stored for a commit
// GET /api/projects/{id}/commits/{commitId}
func (h *ProjectHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	commitID := r.PathValue("commitId")
	content, err := h.projectService.Checkout(r.Context(), r.PathValue("id"), commitID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, checkoutResponse{CommitID: commitID, Content: content})
}

// Restore rolls the body back to a commit's snapshot
// POST /api/projects/{id}/commits/{commitId}/restore
func (h *ProjectHandler) Restore(w http.ResponseWriter, r *http.Request) {
	commit, err := h.projectService.Restore(r.Context(), r.PathValue("id"), r.PathValue("commitId"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, commit)
}

// Diff renders a unified diff between two commits
// GET /api/projects/{id}/diff?from=<commit>&to=<commit>
func (h *ProjectHandler) Diff(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	diff, err := h.projectService.Diff(r.Context(), r.PathValue("id"), q.Get("from"), q.Get("to"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondText(w, http.StatusOK, "text/x-diff; charset=utf-8", diff)
}

// HasUnsavedChanges reports whether the body differs from the latest commit
// GET /api/projects/{id}/unsaved
func (h *ProjectHandler) HasUnsavedChanges(w http.ResponseWriter, r *http.Request) {
	unsaved, err := h.projectService.HasUnsavedChanges(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, unsavedResponse{HasUnsavedChanges: unsaved})
}
