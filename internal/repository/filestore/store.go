package filestore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"branchwrite/internal/domain"
	"branchwrite/internal/domain/repositories"
	docsysRepo "branchwrite/internal/domain/repositories/docsystem"
	"branchwrite/internal/utils"
)

// RepositoryConfig holds configuration shared by the file-backed repositories
type RepositoryConfig struct {
	Paths  *Paths
	Logger *slog.Logger
}

// NewRepositoryConfig resolves root (empty = ~/.branchwrite) and makes sure
// the projects/ and books/ collections exist
func NewRepositoryConfig(root string, logger *slog.Logger) (*RepositoryConfig, error) {
	paths, err := NewPaths(root)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, &domain.IOError{Op: "create storage root", Path: paths.Root, Err: err}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RepositoryConfig{Paths: paths, Logger: logger}, nil
}

// Repositories bundles the file-backed repositories over one storage root
type Repositories struct {
	Projects  docsysRepo.ProjectRepository
	Books     docsysRepo.BookRepository
	Documents docsysRepo.DocumentRepository
	TxManager repositories.TransactionManager
}

// NewRepositories creates every repository over config with a fresh store lock
func NewRepositories(config *RepositoryConfig) *Repositories {
	return &Repositories{
		Projects:  NewProjectRepository(config),
		Books:     NewBookRepository(config),
		Documents: NewDocumentRepository(config),
		TxManager: NewTransactionManager(),
	}
}

// checkID rejects ids that would escape their collection directory
func checkID(kind, id string) error {
	if err := utils.ValidateEntityID(id); err != nil {
		return fmt.Errorf("%w: invalid %s id: %v", domain.ErrValidation, kind, err)
	}
	return nil
}

// listConfigs scans the immediate subdirectories of root and decodes each
// config.json into T. Unreadable or malformed configs are logged and skipped
// so one damaged entity never hides the others. The result is sorted by
// modified() descending; equal timestamps keep scan order.
func listConfigs[T any](root string, a Artifact, logger *slog.Logger, modified func(*T) time.Time) ([]T, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if isNotExist(err) {
			return []T{}, nil
		}
		return nil, &domain.IOError{Op: "read collection directory", Path: root, Err: err}
	}

	configs := make([]T, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())

		var cfg T
		ok, err := decodeArtifact(dir, Artifact{Name: a.Name, What: a.What, Policy: Optional}, &cfg)
		if err != nil {
			logger.Warn("skipping unreadable entry",
				"what", a.What,
				"dir", dir,
				"error", err,
			)
			continue
		}
		if !ok {
			continue
		}
		configs = append(configs, cfg)
	}

	sort.SliceStable(configs, func(i, j int) bool {
		return modified(&configs[i]).After(modified(&configs[j]))
	})

	return configs, nil
}
