package docsystem

import (
	"log/slog"

	"branchwrite/internal/domain/repositories"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
	docsysSvc "branchwrite/internal/domain/services/docsystem"
	"branchwrite/internal/service/docsystem/converter"
)

// Services bundles the store services that share one transaction manager
type Services struct {
	Projects  docsysSvc.ProjectService
	Books     docsysSvc.BookService
	Documents docsysSvc.DocumentService
}

// SetupServices wires the store services over the given repositories.
// Every service must share txManager so all operations serialize on one lock.
func SetupServices(
	projectRepo docsysRepo.ProjectRepository,
	bookRepo docsysRepo.BookRepository,
	docRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *Services {
	analyzer := NewContentAnalyzer()
	exporter := NewExportWriter(logger)

	return &Services{
		Projects:  NewProjectService(projectRepo, txManager, analyzer, exporter, logger),
		Books:     NewBookService(bookRepo, txManager, logger),
		Documents: NewDocumentService(docRepo, bookRepo, txManager, analyzer, converter.NewRegistry(), logger),
	}
}
