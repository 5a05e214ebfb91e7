package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"branchwrite/internal/config"
	models "branchwrite/internal/domain/models/docsystem"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
	"branchwrite/internal/repository/filestore"
	serviceDocsys "branchwrite/internal/service/docsystem"

	"github.com/joho/godotenv"
)

var sampleDrafts = []struct {
	content string
	message string
	auto    bool
}{
	{"The lighthouse keeper counted ships.\n", "Opening line", false},
	{"The lighthouse keeper counted ships.\nNone came that winter.\n", "", true},
	{"The lighthouse keeper counted ships.\nNone came that winter, and the lamp burned for no one.\n", "Tighten second line", false},
}

var sampleChapters = []struct {
	title   string
	docType string
	body    string
}{
	{"Arrival", models.DocTypeChapter, "# Arrival\n\nThe ferry left her on the quay with two suitcases.\n"},
	{"The Keeper", models.DocTypeChapter, "# The Keeper\n\nHe had not spoken aloud in eleven days.\n"},
	{"Tide tables", models.DocTypeNote, "Spring tides: 3rd and 17th.\n"},
}

func main() {
	root := flag.String("root", "", "Storage root (default: $BRANCHWRITE_HOME or ~/.branchwrite)")
	clearData := flag.Bool("clear-data", false, "Delete every project and book before seeding")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if *root == "" {
		*root = cfg.HomeDir
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: cannot run --clear-data in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	repoConfig, err := filestore.NewRepositoryConfig(*root, logger)
	if err != nil {
		log.Fatalf("Failed to open storage root: %v", err)
	}
	repos := filestore.NewRepositories(repoConfig)
	services := serviceDocsys.SetupServices(repos.Projects, repos.Books, repos.Documents, repos.TxManager, logger)

	ctx := context.Background()

	if *clearData {
		if err := clearAll(ctx, services); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
	}

	log.Printf("Seeding %s (environment: %s)", repoConfig.Paths.Root, cfg.Environment)

	if err := seedProject(ctx, services.Projects, logger); err != nil {
		log.Fatalf("Failed to seed project: %v", err)
	}
	if err := seedBook(ctx, services, logger); err != nil {
		log.Fatalf("Failed to seed book: %v", err)
	}

	log.Printf("Seeding complete")
}

func clearAll(ctx context.Context, services *serviceDocsys.Services) error {
	projects, err := services.Projects.ListProjects(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := services.Projects.DeleteProject(ctx, p.ID); err != nil {
			return err
		}
	}

	books, err := services.Books.ListBooks(ctx)
	if err != nil {
		return err
	}
	for _, b := range books {
		if err := services.Books.DeleteBook(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}

func seedProject(ctx context.Context, projects docsysSvc.ProjectService, logger *slog.Logger) error {
	project, err := projects.CreateProject(ctx, &docsysSvc.CreateProjectRequest{
		Name:        "The Lighthouse",
		Description: "A short story drafted in three passes",
		Author:      "Sample Author",
	})
	if err != nil {
		return err
	}

	for _, draft := range sampleDrafts {
		if _, err := projects.UpdateContent(ctx, project.Config.ID, draft.content); err != nil {
			return err
		}
		if _, err := projects.Commit(ctx, project.Config.ID, &docsysSvc.CommitRequest{
			Message:      draft.message,
			IsAutoCommit: draft.auto,
		}); err != nil {
			return err
		}
	}

	logger.Info("seeded project",
		"id", project.Config.ID,
		"commits", len(sampleDrafts),
	)
	return nil
}

func seedBook(ctx context.Context, services *serviceDocsys.Services, logger *slog.Logger) error {
	book, err := services.Books.CreateBook(ctx, &docsysSvc.CreateBookRequest{
		Name:        "Salt and Lamplight",
		Description: "A novel in short chapters",
		Author:      "Sample Author",
		Genre:       "Literary fiction",
	})
	if err != nil {
		return err
	}

	var firstID string
	for _, ch := range sampleChapters {
		doc, err := services.Documents.CreateDocument(ctx, &docsysSvc.CreateDocumentRequest{
			BookID:  book.Config.ID,
			Title:   ch.title,
			DocType: ch.docType,
		})
		if err != nil {
			return err
		}
		if err := services.Documents.SaveContent(ctx, book.Config.ID, doc.ID, ch.body); err != nil {
			return err
		}
		if firstID == "" {
			firstID = doc.ID
		}
	}

	if _, err := services.Books.SetCurrentDocument(ctx, book.Config.ID, &firstID); err != nil {
		return err
	}

	logger.Info("seeded book",
		"id", book.Config.ID,
		"documents", len(sampleChapters),
	)
	return nil
}
