package docsystem

import (
	"context"

	"branchwrite/internal/domain/models/docsystem"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

// CommitRequest represents a request to snapshot the current document body
type CommitRequest struct {
	Message      string `json:"message"`
	IsAutoCommit bool   `json:"is_auto_commit"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject allocates an id, default settings and an empty document, and persists it
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*docsystem.Project, error)

	// SaveProject persists the whole project as given
	SaveProject(ctx context.Context, project *docsystem.Project) error

	// GetProject loads a project by ID
	GetProject(ctx context.Context, id string) (*docsystem.Project, error)

	// ListProjects returns all readable project configs, most recently modified first
	ListProjects(ctx context.Context) ([]docsystem.ProjectConfig, error)

	// DeleteProject removes a project; unknown ids succeed
	DeleteProject(ctx context.Context, id string) error

	// ExportProject writes the export bundle into destination
	ExportProject(ctx context.Context, id, destination string) error

	// ExportArchive renders the export bundle as a zip archive
	ExportArchive(ctx context.Context, id string) ([]byte, error)

	// GetStats derives commit and size counters from the stored project
	GetStats(ctx context.Context, id string) (*docsystem.ProjectStats, error)

	// UpdateContent replaces the document body and recomputes its statistics
	UpdateContent(ctx context.Context, id, content string) (*docsystem.Project, error)

	// Commit snapshots the current document body
	Commit(ctx context.Context, id string, req *CommitRequest) (*docsystem.CommitInfo, error)

	// ListCommits returns the commit list, newest first
	ListCommits(ctx context.Context, id string) ([]docsystem.CommitInfo, error)

	// Checkout returns the snapshot text of a commit
	Checkout(ctx context.Context, id, commitID string) (string, error)

	// Restore makes a commit's snapshot the current body and records a rollback commit
	Restore(ctx context.Context, id, commitID string) (*docsystem.CommitInfo, error)

	// Diff renders a unified diff between two commit snapshots
	Diff(ctx context.Context, id, fromCommitID, toCommitID string) (string, error)

	// HasUnsavedChanges reports whether the body differs from the newest snapshot
	HasUnsavedChanges(ctx context.Context, id string) (bool, error)
}
