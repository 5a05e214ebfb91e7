package docsystem

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	"branchwrite/internal/utils"
)

// Export bundle layout
const (
	exportDocumentFile = "document.md"
	exportInfoFile     = "project_info.md"
	exportHistoryDir   = "version_history"

	exportTimeLayout = "2006-01-02 15:04:05"
)

// ExportWriter renders a loaded project into a human-readable bundle
type ExportWriter struct {
	logger *slog.Logger
}

// NewExportWriter creates a new export writer
func NewExportWriter(logger *slog.Logger) *ExportWriter {
	return &ExportWriter{logger: logger}
}

// Write creates destination and writes document.md, project_info.md and,
// when the project has commits, version_history/<commit_id>.md for every
// commit whose snapshot is present. Commits without a snapshot are skipped.
func (w *ExportWriter) Write(project *models.Project, destination string) error {
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return &domain.IOError{Op: "create export directory", Path: destination, Err: err}
	}

	if err := writeExportFile(filepath.Join(destination, exportDocumentFile), project.DocumentContent); err != nil {
		return err
	}
	if err := writeExportFile(filepath.Join(destination, exportInfoFile), RenderProjectInfo(&project.Config)); err != nil {
		return err
	}

	if len(project.Commits) == 0 {
		return nil
	}

	historyDir := filepath.Join(destination, exportHistoryDir)
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return &domain.IOError{Op: "create history directory", Path: historyDir, Err: err}
	}

	written := 0
	for i := range project.Commits {
		commit := &project.Commits[i]
		content, ok := project.CommitData[commit.ID]
		if !ok {
			continue
		}
		if err := utils.ValidateEntityID(commit.ID); err != nil {
			w.logger.Warn("skipping commit with unsafe id in export",
				"project_id", project.Config.ID,
				"commit_id", commit.ID,
				"error", err,
			)
			continue
		}

		path := filepath.Join(historyDir, commit.ID+".md")
		if err := writeExportFile(path, RenderCommit(commit, content)); err != nil {
			return err
		}
		written++
	}

	w.logger.Debug("export written",
		"project_id", project.Config.ID,
		"destination", destination,
		"commits", len(project.Commits),
		"versions_written", written,
	)

	return nil
}

// RenderProjectInfo renders the project_info.md sheet
func RenderProjectInfo(cfg *models.ProjectConfig) string {
	return fmt.Sprintf("# %s\n\n%s\n\n**Author**: %s\n**Created**: %s\n**Last Modified**: %s\n\n",
		cfg.Name,
		cfg.Description,
		cfg.Author,
		cfg.CreatedAt.UTC().Format(exportTimeLayout),
		cfg.LastModified.UTC().Format(exportTimeLayout),
	)
}

// RenderCommit renders one version_history/<id>.md file
func RenderCommit(commit *models.CommitInfo, content string) string {
	kind := "Manual save"
	if commit.IsAutoCommit {
		kind = "Auto save"
	}

	return fmt.Sprintf("# Version: %s\n\n**Time**: %s\n**Type**: %s\n**Words**: %d\n\n---\n\n%s",
		commit.Message,
		commit.Timestamp.UTC().Format(exportTimeLayout),
		kind,
		commit.WordCount,
		content,
	)
}

func writeExportFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &domain.IOError{Op: "write export file", Path: path, Err: err}
	}
	return nil
}
