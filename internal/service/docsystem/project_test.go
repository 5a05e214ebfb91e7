package docsystem

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
)

func createTestProject(t *testing.T, s *testStore) *models.Project {
	t.Helper()
	project, err := s.Projects.CreateProject(context.Background(), &docsysSvc.CreateProjectRequest{
		Name:        "  The   Lighthouse ",
		Description: "short story",
		Author:      "A. Writer",
	})
	require.NoError(t, err)
	return project
}

func TestProjectService_CreateProject(t *testing.T) {
	s := newTestStore(t)
	project := createTestProject(t, s)

	assert.NotEmpty(t, project.Config.ID)
	assert.Equal(t, "The Lighthouse", project.Config.Name)
	assert.Equal(t, models.DefaultProjectVersion, project.Config.Version)
	assert.Equal(t, models.DefaultProjectSettings(), project.Config.Settings)
	assert.Equal(t, project.Config.CreatedAt, project.Config.LastModified)
	assert.Equal(t, "The Lighthouse - Main Document", project.DocumentMetadata.Title)
	assert.Equal(t, uint32(1), project.DocumentMetadata.LineCount)
	assert.NotEqual(t, project.Config.ID, project.DocumentMetadata.ID)
	assert.Empty(t, project.Commits)

	loaded, err := s.Projects.GetProject(context.Background(), project.Config.ID)
	require.NoError(t, err)
	assert.Equal(t, project, loaded)
}

func TestProjectService_CreateProjectValidation(t *testing.T) {
	tests := []struct {
		name string
		req  docsysSvc.CreateProjectRequest
	}{
		{name: "empty name", req: docsysSvc.CreateProjectRequest{Name: ""}},
		{name: "blank name", req: docsysSvc.CreateProjectRequest{Name: "   "}},
		{name: "name too long", req: docsysSvc.CreateProjectRequest{Name: strings.Repeat("n", 256)}},
		{name: "author too long", req: docsysSvc.CreateProjectRequest{Name: "ok", Author: strings.Repeat("a", 256)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Projects.CreateProject(context.Background(), &tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)

			projects, err := s.Projects.ListProjects(context.Background())
			require.NoError(t, err)
			assert.Empty(t, projects)
		})
	}
}

func TestProjectService_UpdateContent(t *testing.T) {
	s := newTestStore(t)
	project := createTestProject(t, s)

	updated, err := s.Projects.UpdateContent(context.Background(), project.Config.ID, "one two\nthree\n")
	require.NoError(t, err)

	meta := updated.DocumentMetadata
	assert.Equal(t, uint32(3), meta.WordCount)
	assert.Equal(t, uint32(14), meta.CharacterCount)
	assert.Equal(t, uint32(3), meta.LineCount)
	assert.False(t, updated.Config.LastModified.Before(project.Config.LastModified))
	assert.Equal(t, meta.LastModified, updated.Config.LastModified)

	loaded, err := s.Projects.GetProject(context.Background(), project.Config.ID)
	require.NoError(t, err)
	assert.Equal(t, "one two\nthree\n", loaded.DocumentContent)
	assert.Equal(t, meta, loaded.DocumentMetadata)
}

func TestProjectService_CommitHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID
	analyzer := NewContentAnalyzer()

	_, err := s.Projects.UpdateContent(ctx, id, "first draft")
	require.NoError(t, err)
	first, err := s.Projects.Commit(ctx, id, &docsysSvc.CommitRequest{Message: "first"})
	require.NoError(t, err)

	_, err = s.Projects.UpdateContent(ctx, id, "second draft here")
	require.NoError(t, err)
	second, err := s.Projects.Commit(ctx, id, &docsysSvc.CommitRequest{IsAutoCommit: true})
	require.NoError(t, err)

	assert.Equal(t, "first", first.Message)
	assert.Equal(t, "Auto commit", second.Message)
	assert.True(t, second.IsAutoCommit)
	assert.Equal(t, analyzer.Hash("second draft here"), second.DocumentHash)
	assert.Equal(t, uint32(3), second.WordCount)
	assert.Equal(t, uint32(17), second.CharacterCount)

	commits, err := s.Projects.ListCommits(ctx, id)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, second.ID, commits[0].ID, "newest first")
	assert.Equal(t, first.ID, commits[1].ID)

	// Every listed commit has a snapshot
	project, err := s.Projects.GetProject(ctx, id)
	require.NoError(t, err)
	for _, c := range project.Commits {
		assert.Contains(t, project.CommitData, c.ID)
	}

	manual, err := s.Projects.Commit(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "Manual commit", manual.Message)
}

func TestProjectService_CommitMessageTooLong(t *testing.T) {
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID

	_, err := s.Projects.Commit(context.Background(), id, &docsysSvc.CommitRequest{Message: strings.Repeat("m", 501)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectService_CheckoutAndRestore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID

	_, err := s.Projects.UpdateContent(ctx, id, "version one")
	require.NoError(t, err)
	v1, err := s.Projects.Commit(ctx, id, &docsysSvc.CommitRequest{Message: "v1"})
	require.NoError(t, err)

	_, err = s.Projects.UpdateContent(ctx, id, "version two, longer")
	require.NoError(t, err)
	_, err = s.Projects.Commit(ctx, id, &docsysSvc.CommitRequest{Message: "v2"})
	require.NoError(t, err)

	content, err := s.Projects.Checkout(ctx, id, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, "version one", content)

	_, err = s.Projects.Checkout(ctx, id, "no-such-commit")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rollback, err := s.Projects.Restore(ctx, id, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rollback to v1", rollback.Message)
	assert.False(t, rollback.IsAutoCommit)
	assert.Equal(t, uint32(2), rollback.WordCount)

	project, err := s.Projects.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "version one", project.DocumentContent)
	assert.Len(t, project.Commits, 3)
	assert.Equal(t, rollback.ID, project.Commits[0].ID)
}

func TestProjectService_CheckoutMissingSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID

	commit, err := s.Projects.Commit(ctx, id, &docsysSvc.CommitRequest{Message: "empty"})
	require.NoError(t, err)

	snapshot := filepath.Join(s.config.Paths.ProjectDir(id), "commit_data", commit.ID+".md")
	require.NoError(t, os.Remove(snapshot))

	_, err = s.Projects.Checkout(ctx, id, commit.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "commit snapshot", notFound.ResourceType)
}

func TestProjectService_Diff(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID

	_, err := s.Projects.UpdateContent(ctx, id, "alpha\nbeta\ngamma\n")
	require.NoError(t, err)
	from, err := s.Projects.Commit(ctx, id, nil)
	require.NoError(t, err)

	_, err = s.Projects.UpdateContent(ctx, id, "alpha\nBETA\ngamma\n")
	require.NoError(t, err)
	to, err := s.Projects.Commit(ctx, id, nil)
	require.NoError(t, err)

	diff, err := s.Projects.Diff(ctx, id, from.ID, to.ID)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- "+from.ID)
	assert.Contains(t, diff, "+++ "+to.ID)
	assert.Contains(t, diff, "-beta\n")
	assert.Contains(t, diff, "+BETA\n")

	same, err := s.Projects.Diff(ctx, id, from.ID, from.ID)
	require.NoError(t, err)
	assert.Empty(t, same)
}

func TestProjectService_HasUnsavedChanges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID

	unsaved, err := s.Projects.HasUnsavedChanges(ctx, id)
	require.NoError(t, err)
	assert.False(t, unsaved, "empty project without commits")

	_, err = s.Projects.UpdateContent(ctx, id, "words")
	require.NoError(t, err)
	unsaved, err = s.Projects.HasUnsavedChanges(ctx, id)
	require.NoError(t, err)
	assert.True(t, unsaved)

	_, err = s.Projects.Commit(ctx, id, nil)
	require.NoError(t, err)
	unsaved, err = s.Projects.HasUnsavedChanges(ctx, id)
	require.NoError(t, err)
	assert.False(t, unsaved)
}

func TestProjectService_GetStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID

	_, err := s.Projects.UpdateContent(ctx, id, "three little words")
	require.NoError(t, err)
	for _, auto := range []bool{true, false, true, true, false} {
		_, err := s.Projects.Commit(ctx, id, &docsysSvc.CommitRequest{IsAutoCommit: auto})
		require.NoError(t, err)
	}

	stats, err := s.Projects.GetStats(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &models.ProjectStats{
		TotalCommits:          5,
		AutoCommits:           3,
		ManualCommits:         2,
		CurrentWordCount:      3,
		CurrentCharacterCount: 18,
		CurrentLineCount:      1,
	}, stats)
}

func TestProjectService_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Projects.GetProject(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Projects.UpdateContent(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Projects.Commit(ctx, "missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Projects.GetStats(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, s.Projects.DeleteProject(ctx, "missing"))
}

func TestProjectService_ExportProject(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	project := createTestProject(t, s)

	project.DocumentContent = "current body"
	project.Commits = []models.CommitInfo{{
		ID:           "c1",
		Timestamp:    time.Date(2024, 4, 5, 6, 7, 8, 0, time.UTC),
		Message:      "m1",
		IsAutoCommit: false,
		WordCount:    10,
	}}
	project.CommitData = map[string]string{"c1": "body text"}
	require.NoError(t, s.Projects.SaveProject(ctx, project))

	dest := filepath.Join(t.TempDir(), "export")
	require.NoError(t, s.Projects.ExportProject(ctx, project.Config.ID, dest))

	doc, err := os.ReadFile(filepath.Join(dest, "document.md"))
	require.NoError(t, err)
	assert.Equal(t, "current body", string(doc))

	info, err := os.ReadFile(filepath.Join(dest, "project_info.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(info), "# The Lighthouse\n\nshort story\n"))
	assert.Contains(t, string(info), "**Author**: A. Writer")

	version, err := os.ReadFile(filepath.Join(dest, "version_history", "c1.md"))
	require.NoError(t, err)
	assert.Contains(t, string(version), "m1")
	assert.Contains(t, string(version), "10")
	assert.Contains(t, string(version), "body text")
	assert.Contains(t, string(version), "**Time**: 2024-04-05 06:07:08")
	assert.Contains(t, string(version), "**Type**: Manual save")
}

func TestProjectService_ExportWithoutCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	project := createTestProject(t, s)

	dest := filepath.Join(t.TempDir(), "export")
	require.NoError(t, s.Projects.ExportProject(ctx, project.Config.ID, dest))

	assert.FileExists(t, filepath.Join(dest, "document.md"))
	assert.FileExists(t, filepath.Join(dest, "project_info.md"))
	assert.NoDirExists(t, filepath.Join(dest, "version_history"))

	err := s.Projects.ExportProject(ctx, project.Config.ID, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectService_ExportArchive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createTestProject(t, s).Config.ID

	_, err := s.Projects.UpdateContent(ctx, id, "zip me")
	require.NoError(t, err)
	commit, err := s.Projects.Commit(ctx, id, &docsysSvc.CommitRequest{Message: "packed"})
	require.NoError(t, err)

	data, err := s.Projects.ExportArchive(ctx, id)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(body)
	}

	assert.Equal(t, "zip me", files["document.md"])
	assert.Contains(t, files, "project_info.md")
	assert.Contains(t, files["version_history/"+commit.ID+".md"], "# Version: packed")
}
