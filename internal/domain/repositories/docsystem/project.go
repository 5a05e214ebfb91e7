package docsystem

import (
	"context"

	"branchwrite/internal/domain/models/docsystem"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates the project directory and persists every artifact
	Create(ctx context.Context, project *docsystem.Project) error

	// Save writes config, body, metadata, commit list and snapshots
	Save(ctx context.Context, project *docsystem.Project) error

	// Load reads a project, degrading optional artifacts to empty values
	Load(ctx context.Context, id string) (*docsystem.Project, error)

	// List returns every parsable project config, most recently modified first
	List(ctx context.Context) ([]docsystem.ProjectConfig, error)

	// Delete removes the project directory; absent ids are not an error
	Delete(ctx context.Context, id string) error
}
