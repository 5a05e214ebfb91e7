package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"branchwrite/internal/config"
	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	"branchwrite/internal/domain/repositories"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
	"branchwrite/internal/domain/services"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
	"branchwrite/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo docsysRepo.ProjectRepository
	txManager   repositories.TransactionManager
	analyzer    services.ContentAnalyzer
	exporter    *ExportWriter
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo docsysRepo.ProjectRepository,
	txManager repositories.TransactionManager,
	analyzer services.ContentAnalyzer,
	exporter *ExportWriter,
	logger *slog.Logger,
) docsysSvc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		txManager:   txManager,
		analyzer:    analyzer,
		exporter:    exporter,
		logger:      logger,
	}
}

// CreateProject creates a new project with an empty document body
func (s *projectService) CreateProject(ctx context.Context, req *docsysSvc.CreateProjectRequest) (*models.Project, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := utils.NormalizeName(req.Name)
	now := time.Now().UTC()

	project := &models.Project{
		Config: models.ProjectConfig{
			ID:           uuid.NewString(),
			Name:         name,
			Description:  strings.TrimSpace(req.Description),
			CreatedAt:    now,
			LastModified: now,
			Version:      models.DefaultProjectVersion,
			Author:       strings.TrimSpace(req.Author),
			Settings:     models.DefaultProjectSettings(),
		},
		DocumentMetadata: models.DocumentMetadata{
			ID:           uuid.NewString(),
			Title:        name + " - Main Document",
			CreatedAt:    now,
			LastModified: now,
			LineCount:    1,
			Tags:         []string{},
		},
		Commits:    []models.CommitInfo{},
		CommitData: make(map[string]string),
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.projectRepo.Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.Config.ID,
		"name", project.Config.Name,
	)

	return project, nil
}

// SaveProject persists the project exactly as given
func (s *projectService) SaveProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("%w: project is required", domain.ErrValidation)
	}
	if err := validateID("project", project.Config.ID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.projectRepo.Save(ctx, project)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("project saved", "id", project.Config.ID)
	return nil
}

// GetProject loads a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	if err := validateID("project", id); err != nil {
		return nil, err
	}

	var project *models.Project
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		project, err = s.projectRepo.Load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects retrieves all readable project configs
func (s *projectService) ListProjects(ctx context.Context) ([]models.ProjectConfig, error) {
	var projects []models.ProjectConfig
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		projects, err = s.projectRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// DeleteProject removes a project directory
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	if err := validateID("project", id); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.projectRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}

// ExportProject writes the export bundle for a project into destination
func (s *projectService) ExportProject(ctx context.Context, id, destination string) error {
	if err := validateID("project", id); err != nil {
		return err
	}
	if strings.TrimSpace(destination) == "" {
		return fmt.Errorf("%w: export destination is required", domain.ErrValidation)
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		project, err := s.projectRepo.Load(ctx, id)
		if err != nil {
			return err
		}
		return s.exporter.Write(project, destination)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project exported",
		"id", id,
		"destination", destination,
	)
	return nil
}

// ExportArchive renders the export bundle into a temp directory and zips it
func (s *projectService) ExportArchive(ctx context.Context, id string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "branchwrite-export-*")
	if err != nil {
		return nil, &domain.IOError{Op: "create temp export directory", Path: os.TempDir(), Err: err}
	}
	defer os.RemoveAll(tmpDir)

	if err := s.ExportProject(ctx, id, tmpDir); err != nil {
		return nil, err
	}

	archive, err := utils.CreateZipFromDirectory(tmpDir)
	if err != nil {
		return nil, &domain.IOError{Op: "archive export", Path: tmpDir, Err: err}
	}
	return archive, nil
}

// GetStats derives statistics from a freshly loaded project
func (s *projectService) GetStats(ctx context.Context, id string) (*models.ProjectStats, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return DeriveStats(project), nil
}

// UpdateContent replaces the document body and refreshes its metadata
func (s *projectService) UpdateContent(ctx context.Context, id, content string) (*models.Project, error) {
	if err := validateID("project", id); err != nil {
		return nil, err
	}

	var project *models.Project
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		project, err = s.projectRepo.Load(ctx, id)
		if err != nil {
			return err
		}
		s.applyContent(project, content, time.Now().UTC())
		return s.projectRepo.Save(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("project content updated",
		"id", id,
		"word_count", project.DocumentMetadata.WordCount,
	)
	return project, nil
}

// Commit snapshots the current body as a new commit, newest first
func (s *projectService) Commit(ctx context.Context, id string, req *docsysSvc.CommitRequest) (*models.CommitInfo, error) {
	if err := validateID("project", id); err != nil {
		return nil, err
	}
	if req == nil {
		req = &docsysSvc.CommitRequest{}
	}
	if err := validation.Validate(req.Message, validation.Length(0, config.MaxCommitMessageLength)); err != nil {
		return nil, fmt.Errorf("%w: message: %v", domain.ErrValidation, err)
	}

	var commit *models.CommitInfo
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		project, err := s.projectRepo.Load(ctx, id)
		if err != nil {
			return err
		}
		commit = s.appendCommit(project, req.Message, req.IsAutoCommit, time.Now().UTC())
		return s.projectRepo.Save(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("commit created",
		"project_id", id,
		"commit_id", commit.ID,
		"auto", commit.IsAutoCommit,
	)
	return commit, nil
}

// ListCommits returns the commit list, newest first
func (s *projectService) ListCommits(ctx context.Context, id string) ([]models.CommitInfo, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return project.Commits, nil
}

// Checkout returns the snapshot text stored for a commit
func (s *projectService) Checkout(ctx context.Context, id, commitID string) (string, error) {
	if err := validateIDs("project", id, "commit", commitID); err != nil {
		return "", err
	}

	project, err := s.GetProject(ctx, id)
	if err != nil {
		return "", err
	}
	return snapshotOf(project, commitID)
}

// Restore replaces the body with a commit's snapshot and records the rollback
// as a manual commit
func (s *projectService) Restore(ctx context.Context, id, commitID string) (*models.CommitInfo, error) {
	if err := validateIDs("project", id, "commit", commitID); err != nil {
		return nil, err
	}

	var rollback *models.CommitInfo
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		project, err := s.projectRepo.Load(ctx, id)
		if err != nil {
			return err
		}

		snapshot, err := snapshotOf(project, commitID)
		if err != nil {
			return err
		}
		target := project.FindCommit(commitID)
		message := "Rollback to " + target.Message

		now := time.Now().UTC()
		s.applyContent(project, snapshot, now)
		rollback = s.appendCommit(project, message, false, now)
		return s.projectRepo.Save(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project restored",
		"project_id", id,
		"from_commit", commitID,
		"commit_id", rollback.ID,
	)
	return rollback, nil
}

// Diff renders a unified diff from one commit snapshot to another
func (s *projectService) Diff(ctx context.Context, id, fromCommitID, toCommitID string) (string, error) {
	if err := validateIDs("project", id, "commit", fromCommitID, "commit", toCommitID); err != nil {
		return "", err
	}

	project, err := s.GetProject(ctx, id)
	if err != nil {
		return "", err
	}

	from, err := snapshotOf(project, fromCommitID)
	if err != nil {
		return "", err
	}
	to, err := snapshotOf(project, toCommitID)
	if err != nil {
		return "", err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromCommitID,
		ToFile:   toCommitID,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff commits: %w", err)
	}
	return diff, nil
}

// HasUnsavedChanges compares the body to the newest commit's snapshot.
// A project with no commits has unsaved changes once its body is non-empty.
func (s *projectService) HasUnsavedChanges(ctx context.Context, id string) (bool, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return false, err
	}

	if len(project.Commits) == 0 {
		return project.DocumentContent != "", nil
	}
	return project.CommitData[project.Commits[0].ID] != project.DocumentContent, nil
}

// applyContent sets the body and recomputes its metadata counters
func (s *projectService) applyContent(project *models.Project, content string, now time.Time) {
	project.DocumentContent = content
	project.DocumentMetadata.WordCount = uint32(s.analyzer.CountWords(content))
	project.DocumentMetadata.CharacterCount = uint32(s.analyzer.CountCharacters(content))
	project.DocumentMetadata.LineCount = uint32(s.analyzer.CountLines(content))
	project.DocumentMetadata.LastModified = now
	project.Config.LastModified = now
}

// appendCommit snapshots the current body and prepends the commit. Counts
// are taken from the metadata, which applyContent keeps in step with the body.
func (s *projectService) appendCommit(project *models.Project, message string, auto bool, now time.Time) *models.CommitInfo {
	message = strings.TrimSpace(message)
	if message == "" {
		if auto {
			message = "Auto commit"
		} else {
			message = "Manual commit"
		}
	}

	content := project.DocumentContent
	commit := models.CommitInfo{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Message:        message,
		IsAutoCommit:   auto,
		DocumentHash:   s.analyzer.Hash(content),
		WordCount:      project.DocumentMetadata.WordCount,
		CharacterCount: project.DocumentMetadata.CharacterCount,
	}

	project.Commits = append([]models.CommitInfo{commit}, project.Commits...)
	if project.CommitData == nil {
		project.CommitData = make(map[string]string)
	}
	project.CommitData[commit.ID] = content

	return &project.Commits[0]
}

// snapshotOf returns the stored snapshot for a listed commit
func snapshotOf(project *models.Project, commitID string) (string, error) {
	if project.FindCommit(commitID) == nil {
		return "", domain.NewNotFound("commit", commitID)
	}
	snapshot, ok := project.CommitData[commitID]
	if !ok {
		return "", domain.NewNotFound("commit snapshot", commitID)
	}
	return snapshot, nil
}

// validateCreateRequest validates a create project request
func (s *projectService) validateCreateRequest(req *docsysSvc.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
			notBlankRule,
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Author, validation.Length(0, config.MaxAuthorLength)),
	)
}
