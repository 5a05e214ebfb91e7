package docsystem

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
)

func createTestBook(t *testing.T, s *testStore) *models.Book {
	t.Helper()
	book, err := s.Books.CreateBook(context.Background(), &docsysSvc.CreateBookRequest{
		Name:   "Salt and Lamplight",
		Author: "A. Writer",
		Genre:  "mystery",
	})
	require.NoError(t, err)
	return book
}

func createTestDocument(t *testing.T, s *testStore, bookID, title string) *models.DocumentConfig {
	t.Helper()
	doc, err := s.Documents.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		BookID: bookID,
		Title:  title,
	})
	require.NoError(t, err)
	return doc
}

func orders(docs []models.DocumentConfig) []uint32 {
	out := make([]uint32, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Order)
	}
	return out
}

func TestDocumentService_CreateDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	book := createTestBook(t, s)

	doc := createTestDocument(t, s, book.Config.ID, "  Chapter One ")
	assert.Equal(t, "Chapter One", doc.Title)
	assert.Equal(t, models.DocTypeChapter, doc.DocType)
	assert.Equal(t, models.StatusDraft, doc.Status)
	assert.Equal(t, uint32(1), doc.Order)
	assert.Equal(t, book.Config.ID, doc.BookID)
	assert.Zero(t, doc.WordCount)

	docs, err := s.Documents.ListDocuments(ctx, book.Config.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, *doc, docs[0])

	reloaded, err := s.Books.GetBook(ctx, book.Config.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Config.LastModified.After(book.Config.LastModified) ||
		reloaded.Config.LastModified.Equal(book.Config.LastModified))

	content, err := s.Documents.LoadContent(ctx, book.Config.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestDocumentService_CreateDocumentValidation(t *testing.T) {
	tests := []struct {
		name string
		req  docsysSvc.CreateDocumentRequest
	}{
		{name: "missing title", req: docsysSvc.CreateDocumentRequest{BookID: "b"}},
		{name: "blank title", req: docsysSvc.CreateDocumentRequest{BookID: "b", Title: "  "}},
		{name: "unknown type", req: docsysSvc.CreateDocumentRequest{BookID: "b", Title: "t", DocType: "appendix"}},
		{name: "unsafe book id", req: docsysSvc.CreateDocumentRequest{BookID: "../b", Title: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Documents.CreateDocument(context.Background(), &tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDocumentService_CreateInMissingBook(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Documents.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		BookID: "missing",
		Title:  "Lost",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_OrderKeepsGaps(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID

	createTestDocument(t, s, bookID, "One")
	second := createTestDocument(t, s, bookID, "Two")
	createTestDocument(t, s, bookID, "Three")

	docs, err := s.Documents.ListDocuments(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, orders(docs))

	require.NoError(t, s.Documents.DeleteDocument(ctx, bookID, second.ID))
	fourth := createTestDocument(t, s, bookID, "Four")
	assert.Equal(t, uint32(4), fourth.Order)

	docs, err = s.Documents.ListDocuments(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3, 4}, orders(docs))
}

func TestDocumentService_SaveContentUpdatesCounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID
	doc := createTestDocument(t, s, bookID, "Counted")

	require.NoError(t, s.Documents.SaveContent(ctx, bookID, doc.ID, "hello   world\n\nfoo"))

	content, err := s.Documents.LoadContent(ctx, bookID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello   world\n\nfoo", content)

	meta, err := s.repos.Documents.LoadMetadata(ctx, bookID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(18), meta.CharacterCount)
	assert.Equal(t, uint32(3), meta.WordCount)
	assert.False(t, meta.LastModified.Before(doc.LastModified))

	// The book's list entry keeps its creation-time counts
	docs, err := s.Documents.ListDocuments(ctx, bookID)
	require.NoError(t, err)
	assert.Zero(t, docs[0].WordCount)
}

func TestDocumentService_SaveContentWithoutMetadata(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID
	doc := createTestDocument(t, s, bookID, "Bare")

	meta := filepath.Join(s.config.Paths.DocumentDir(bookID, doc.ID), "metadata.json")
	require.NoError(t, os.Remove(meta))

	require.NoError(t, s.Documents.SaveContent(ctx, bookID, doc.ID, "still saved"))
	assert.NoFileExists(t, meta)

	content, err := s.Documents.LoadContent(ctx, bookID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "still saved", content)
}

func TestDocumentService_SaveContentMissingDocument(t *testing.T) {
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID

	err := s.Documents.SaveContent(context.Background(), bookID, "ghost", "text")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_DeleteClearsCurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID
	first := createTestDocument(t, s, bookID, "First")
	second := createTestDocument(t, s, bookID, "Second")

	_, err := s.Books.SetCurrentDocument(ctx, bookID, &first.ID)
	require.NoError(t, err)

	require.NoError(t, s.Documents.DeleteDocument(ctx, bookID, second.ID))
	book, err := s.Books.GetBook(ctx, bookID)
	require.NoError(t, err)
	require.NotNil(t, book.CurrentDocumentID)
	assert.Equal(t, first.ID, *book.CurrentDocumentID)

	require.NoError(t, s.Documents.DeleteDocument(ctx, bookID, first.ID))
	book, err = s.Books.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Nil(t, book.CurrentDocumentID)
	assert.Empty(t, book.Documents)
	assert.NoDirExists(t, s.config.Paths.DocumentDir(bookID, first.ID))
}

func TestDocumentService_ImportDocument(t *testing.T) {
	tests := []struct {
		name       string
		markdown   string
		wantTitle  string
		wantType   string
		wantStatus string
		wantBody   string
	}{
		{
			name:       "front matter",
			markdown:   "---\ntitle: The Storm\ndoc_type: note\nstatus: review\n---\n# Ignored heading\nRain fell.",
			wantTitle:  "The Storm",
			wantType:   models.DocTypeNote,
			wantStatus: models.StatusReview,
			wantBody:   "# Ignored heading\nRain fell.",
		},
		{
			name:       "heading title",
			markdown:   "Intro line\n# Harbour Lights\n\nShips came in.",
			wantTitle:  "Harbour Lights",
			wantType:   models.DocTypeChapter,
			wantStatus: models.StatusDraft,
			wantBody:   "Intro line\n# Harbour Lights\n\nShips came in.",
		},
		{
			name:       "untitled",
			markdown:   "just words",
			wantTitle:  "Untitled",
			wantType:   models.DocTypeChapter,
			wantStatus: models.StatusDraft,
			wantBody:   "just words",
		},
		{
			name:       "front matter without title",
			markdown:   "---\ndoc_type: section\n---\n# From Heading\n",
			wantTitle:  "From Heading",
			wantType:   models.DocTypeSection,
			wantStatus: models.StatusDraft,
			wantBody:   "# From Heading\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore(t)
			bookID := createTestBook(t, s).Config.ID

			doc, err := s.Documents.ImportDocument(ctx, bookID, "", []byte(tt.markdown))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title)
			assert.Equal(t, tt.wantType, doc.DocType)
			assert.Equal(t, tt.wantStatus, doc.Status)
			assert.Equal(t, uint32(1), doc.Order)

			content, err := s.Documents.LoadContent(ctx, bookID, doc.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, content)

			docs, err := s.Documents.ListDocuments(ctx, bookID)
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, doc.ID, docs[0].ID)
		})
	}
}

func TestDocumentService_ImportDocumentRejects(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
	}{
		{name: "unknown doc type", markdown: "---\ndoc_type: appendix\n---\nbody"},
		{name: "unknown status", markdown: "---\nstatus: published\n---\nbody"},
		{name: "non-string title", markdown: "---\ntitle: 42\n---\nbody"},
		{name: "unterminated front matter", markdown: "---\ntitle: open\nbody"},
		{name: "title too long", markdown: "---\ntitle: " + strings.Repeat("t", 256) + "\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore(t)
			bookID := createTestBook(t, s).Config.ID

			_, err := s.Documents.ImportDocument(ctx, bookID, "", []byte(tt.markdown))
			assert.ErrorIs(t, err, domain.ErrValidation)

			docs, err := s.Documents.ListDocuments(ctx, bookID)
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}

func TestDocumentService_ImportByFileType(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		data      string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "text file titled by filename",
			filename:  "harbour_notes.txt",
			data:      "tide at six\r\nboats out",
			wantTitle: "harbour_notes",
			wantBody:  "tide at six\nboats out",
		},
		{
			name:      "html heading becomes title",
			filename:  "storm.html",
			data:      "<h1>The Storm</h1><p>Rain <em>fell</em>.</p><script>x()</script>",
			wantTitle: "The Storm",
		},
		{
			name:      "markdown without heading uses stem",
			filename:  "drafts/03 Epilogue.md",
			data:      "The end.",
			wantTitle: "03 Epilogue",
			wantBody:  "The end.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore(t)
			bookID := createTestBook(t, s).Config.ID

			doc, err := s.Documents.ImportDocument(ctx, bookID, tt.filename, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title)

			content, err := s.Documents.LoadContent(ctx, bookID, doc.ID)
			require.NoError(t, err)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, content)
			}
			assert.NotContains(t, content, "<script")
		})
	}
}

func TestDocumentService_ImportUnsupportedType(t *testing.T) {
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID

	_, err := s.Documents.ImportDocument(context.Background(), bookID, "cover.png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocumentService_ImportArchive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID

	data := buildZip(t, map[string]string{
		"part1/02-storm.md":   "# The Storm\nRain.",
		"part1/01-harbour.md": "---\ntitle: Harbour\nstatus: final\n---\nShips.",
		"cover.png":           "not an image",
		"notes/ideas.txt":     "loose ideas",
		"broken.md":           "---\ndoc_type: appendix\n---\nbad",
	})

	result, err := s.Documents.ImportArchive(ctx, bookID, data)
	require.NoError(t, err)

	assert.Equal(t, docsysSvc.ImportSummary{Created: 3, Skipped: 1, Failed: 1, TotalFiles: 5}, result.Summary)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken.md", result.Errors[0].File)

	titles := make([]string, 0, len(result.Documents))
	for _, d := range result.Documents {
		titles = append(titles, d.Title)
	}
	assert.Equal(t, []string{"ideas", "Harbour", "The Storm"}, titles)

	docs, err := s.Documents.ListDocuments(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, orders(docs))
	assert.Equal(t, models.StatusFinal, docs[1].Status)
}

func TestDocumentService_ImportArchiveRejects(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	bookID := createTestBook(t, s).Config.ID

	_, err := s.Documents.ImportArchive(ctx, bookID, []byte("not a zip"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.Documents.ImportArchive(ctx, "missing", buildZip(t, map[string]string{"a.md": "a"}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
