package filestore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
)

// FileProjectRepository implements the ProjectRepository interface on
// <root>/projects/<id>/
type FileProjectRepository struct {
	paths  *Paths
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) docsysRepo.ProjectRepository {
	return &FileProjectRepository{
		paths:  config.Paths,
		logger: config.Logger,
	}
}

// Create creates the project directory and persists the project
func (r *FileProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := checkID("project", project.Config.ID); err != nil {
		return err
	}

	dir := r.paths.ProjectDir(project.Config.ID)
	if err := makeDir(dir, "project directory"); err != nil {
		return err
	}

	return r.Save(ctx, project)
}

// Save writes config, body, metadata, commit list and one snapshot file per
// commit_data entry, in that order. Each file is replaced atomically but the
// set is not: a crash part-way leaves earlier files updated and later ones stale.
func (r *FileProjectRepository) Save(ctx context.Context, project *models.Project) error {
	id := project.Config.ID
	if err := checkID("project", id); err != nil {
		return err
	}

	dir := r.paths.ProjectDir(id)
	if err := requireDir(dir, "project", id); err != nil {
		return err
	}

	if err := encodeArtifact(dir, ProjectConfigArtifact, project.Config); err != nil {
		return err
	}
	if err := writeArtifact(dir, ProjectBodyArtifact, []byte(project.DocumentContent)); err != nil {
		return err
	}
	if err := encodeArtifact(dir, ProjectMetadataArtifact, project.DocumentMetadata); err != nil {
		return err
	}

	commits := project.Commits
	if commits == nil {
		commits = []models.CommitInfo{}
	}
	if err := encodeArtifact(dir, ProjectCommitsArtifact, commits); err != nil {
		return err
	}

	snapshotDir := filepath.Join(dir, commitDataDir)
	if err := makeDir(snapshotDir, "commit data directory"); err != nil {
		return err
	}

	// Deterministic write order keeps partial-failure states reproducible
	ids := make([]string, 0, len(project.CommitData))
	for commitID := range project.CommitData {
		ids = append(ids, commitID)
	}
	sort.Strings(ids)

	for _, commitID := range ids {
		if err := checkID("commit", commitID); err != nil {
			return err
		}
		snapshot := Artifact{Name: commitID + snapshotExt, What: "commit snapshot", Policy: Optional}
		if err := writeArtifact(snapshotDir, snapshot, []byte(project.CommitData[commitID])); err != nil {
			return err
		}
	}

	r.logger.Debug("project saved",
		"id", id,
		"commits", len(commits),
		"snapshots", len(ids),
	)

	return nil
}

// Load reads a project. Config and metadata are required; the body, the
// commit list and snapshots degrade to empty values when absent.
func (r *FileProjectRepository) Load(ctx context.Context, id string) (*models.Project, error) {
	if err := checkID("project", id); err != nil {
		return nil, err
	}

	dir := r.paths.ProjectDir(id)
	if err := requireDir(dir, "project", id); err != nil {
		return nil, err
	}

	project := &models.Project{
		Commits:    []models.CommitInfo{},
		CommitData: make(map[string]string),
	}

	if _, err := decodeArtifact(dir, ProjectConfigArtifact, &project.Config); err != nil {
		return nil, err
	}

	body, err := readArtifact(dir, ProjectBodyArtifact)
	if err != nil {
		return nil, err
	}
	project.DocumentContent = string(body.Data)

	if _, err := decodeArtifact(dir, ProjectMetadataArtifact, &project.DocumentMetadata); err != nil {
		return nil, err
	}

	if _, err := decodeArtifact(dir, ProjectCommitsArtifact, &project.Commits); err != nil {
		return nil, err
	}
	if project.Commits == nil {
		project.Commits = []models.CommitInfo{}
	}

	if err := r.loadSnapshots(filepath.Join(dir, commitDataDir), project.CommitData); err != nil {
		return nil, err
	}

	return project, nil
}

// loadSnapshots reads every *.md file in dir into data, keyed by file stem.
// Snapshots with no matching commit are kept as-is.
func (r *FileProjectRepository) loadSnapshots(dir string, data map[string]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return &domain.IOError{Op: "read commit data directory", Path: dir, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != snapshotExt {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			r.logger.Warn("skipping unreadable commit snapshot",
				"path", filepath.Join(dir, name),
				"error", err,
			)
			continue
		}
		data[strings.TrimSuffix(name, snapshotExt)] = string(content)
	}

	return nil
}

// List retrieves every parsable project config, most recently modified first
func (r *FileProjectRepository) List(ctx context.Context) ([]models.ProjectConfig, error) {
	return listConfigs(r.paths.ProjectsDir(), ProjectConfigArtifact, r.logger,
		func(c *models.ProjectConfig) time.Time { return c.LastModified })
}

// Delete removes the project directory
func (r *FileProjectRepository) Delete(ctx context.Context, id string) error {
	if err := checkID("project", id); err != nil {
		return err
	}
	return removeDir(r.paths.ProjectDir(id), "project")
}
