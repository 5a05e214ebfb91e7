package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
)

func newDocFixture(t *testing.T) (*RepositoryConfig, *models.DocumentConfig) {
	t.Helper()
	cfg := newTestConfig(t)
	require.NoError(t, NewBookRepository(cfg).Create(context.Background(), sampleBook("b1", time.Now().UTC())))

	now := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)
	return cfg, &models.DocumentConfig{
		ID:           "d1",
		BookID:       "b1",
		Title:        "Chapter One",
		Order:        1,
		DocType:      models.DocTypeChapter,
		CreatedAt:    now,
		LastModified: now,
		Status:       models.StatusDraft,
	}
}

func TestDocumentRepository_CreateLayout(t *testing.T) {
	ctx := context.Background()
	cfg, doc := newDocFixture(t)
	repo := NewDocumentRepository(cfg)

	require.NoError(t, repo.Create(ctx, doc))

	dir := cfg.Paths.DocumentDir("b1", "d1")
	assert.FileExists(t, filepath.Join(dir, "content.md"))
	assert.FileExists(t, filepath.Join(dir, "metadata.json"))
	assert.DirExists(t, filepath.Join(dir, "commits"))

	content, err := repo.LoadContent(ctx, "b1", "d1")
	require.NoError(t, err)
	assert.Equal(t, "", content)

	meta, err := repo.LoadMetadata(ctx, "b1", "d1")
	require.NoError(t, err)
	assert.Equal(t, doc, meta)
}

func TestDocumentRepository_ContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg, doc := newDocFixture(t)
	repo := NewDocumentRepository(cfg)
	require.NoError(t, repo.Create(ctx, doc))

	require.NoError(t, repo.SaveContent(ctx, "b1", "d1", "# One\n\nBody text."))

	content, err := repo.LoadContent(ctx, "b1", "d1")
	require.NoError(t, err)
	assert.Equal(t, "# One\n\nBody text.", content)
}

func TestDocumentRepository_AbsentFiles(t *testing.T) {
	ctx := context.Background()
	cfg, doc := newDocFixture(t)
	repo := NewDocumentRepository(cfg)
	require.NoError(t, repo.Create(ctx, doc))

	dir := cfg.Paths.DocumentDir("b1", "d1")
	require.NoError(t, os.Remove(filepath.Join(dir, "content.md")))
	require.NoError(t, os.Remove(filepath.Join(dir, "metadata.json")))

	content, err := repo.LoadContent(ctx, "b1", "d1")
	require.NoError(t, err)
	assert.Equal(t, "", content)

	_, err = repo.LoadMetadata(ctx, "b1", "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRepository_MalformedMetadata(t *testing.T) {
	ctx := context.Background()
	cfg, doc := newDocFixture(t)
	repo := NewDocumentRepository(cfg)
	require.NoError(t, repo.Create(ctx, doc))

	path := filepath.Join(cfg.Paths.DocumentDir("b1", "d1"), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"order": "first"}`), 0o644))

	_, err := repo.LoadMetadata(ctx, "b1", "d1")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestDocumentRepository_WritesRequireDirectory(t *testing.T) {
	ctx := context.Background()
	cfg, doc := newDocFixture(t)
	repo := NewDocumentRepository(cfg)

	assert.ErrorIs(t, repo.SaveContent(ctx, "b1", "d1", "text"), domain.ErrNotFound)
	assert.ErrorIs(t, repo.SaveMetadata(ctx, doc), domain.ErrNotFound)
}

func TestDocumentRepository_Delete(t *testing.T) {
	ctx := context.Background()
	cfg, doc := newDocFixture(t)
	repo := NewDocumentRepository(cfg)
	require.NoError(t, repo.Create(ctx, doc))

	require.NoError(t, repo.Delete(ctx, "b1", "d1"))
	assert.NoDirExists(t, cfg.Paths.DocumentDir("b1", "d1"))
	assert.DirExists(t, cfg.Paths.DocumentsDir("b1"))
	require.NoError(t, repo.Delete(ctx, "b1", "d1"))

	assert.ErrorIs(t, repo.Delete(ctx, "b1", "../.."), domain.ErrValidation)
}
