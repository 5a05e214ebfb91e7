package filestore

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirName is the application directory created under the user's home
const DefaultDirName = ".branchwrite"

// Collection and artifact names of the on-disk layout
const (
	projectsDirName  = "projects"
	booksDirName     = "books"
	documentsDirName = "documents"
	commitDataDir    = "commit_data"
	docCommitsDir    = "commits"
	logsDirName      = "logs"
	snapshotExt      = ".md"
)

// Paths resolves the fixed storage locations below a root directory
type Paths struct {
	Root string
}

// DefaultRoot returns ~/.branchwrite
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// NewPaths creates a resolver rooted at root; an empty root means DefaultRoot()
func NewPaths(root string) (*Paths, error) {
	if root == "" {
		var err error
		root, err = DefaultRoot()
		if err != nil {
			return nil, err
		}
	}
	return &Paths{Root: root}, nil
}

// ProjectsDir returns <root>/projects
func (p *Paths) ProjectsDir() string {
	return filepath.Join(p.Root, projectsDirName)
}

// BooksDir returns <root>/books
func (p *Paths) BooksDir() string {
	return filepath.Join(p.Root, booksDirName)
}

// LogDir returns <root>/logs
func (p *Paths) LogDir() string {
	return filepath.Join(p.Root, logsDirName)
}

// ProjectDir returns <root>/projects/<id>
func (p *Paths) ProjectDir(id string) string {
	return filepath.Join(p.ProjectsDir(), id)
}

// BookDir returns <root>/books/<id>
func (p *Paths) BookDir(id string) string {
	return filepath.Join(p.BooksDir(), id)
}

// DocumentsDir returns <root>/books/<book_id>/documents
func (p *Paths) DocumentsDir(bookID string) string {
	return filepath.Join(p.BookDir(bookID), documentsDirName)
}

// DocumentDir returns <root>/books/<book_id>/documents/<doc_id>
func (p *Paths) DocumentDir(bookID, docID string) string {
	return filepath.Join(p.DocumentsDir(bookID), docID)
}

// EnsureDirs creates the projects and books collections if missing
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.ProjectsDir(), p.BooksDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
