package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"branchwrite/internal/domain"
)

// Policy decides what a load does when an artifact file is absent
type Policy int

const (
	// Required artifacts fail the load when absent or unreadable
	Required Policy = iota
	// Optional artifacts degrade to an empty default when absent
	Optional
)

// Artifact is one file of an entity directory
type Artifact struct {
	Name   string // file name relative to the entity directory
	What   string // human-readable label used in errors
	Policy Policy
}

// Artifact policy table. Malformed content is a ParseError regardless of
// policy; policy only governs absence.
var (
	ProjectConfigArtifact   = Artifact{Name: "config.json", What: "project config", Policy: Required}
	ProjectBodyArtifact     = Artifact{Name: "document.md", What: "document content", Policy: Optional}
	ProjectMetadataArtifact = Artifact{Name: "metadata.json", What: "document metadata", Policy: Required}
	ProjectCommitsArtifact  = Artifact{Name: "commits.json", What: "commit list", Policy: Optional}

	BookConfigArtifact    = Artifact{Name: "config.json", What: "book config", Policy: Required}
	BookDocumentsArtifact = Artifact{Name: "documents.json", What: "document list", Policy: Optional}
	BookCurrentArtifact   = Artifact{Name: "current_document.txt", What: "current document marker", Policy: Optional}

	DocContentArtifact  = Artifact{Name: "content.md", What: "document content", Policy: Optional}
	DocMetadataArtifact = Artifact{Name: "metadata.json", What: "document metadata", Policy: Required}
)

// loadResult is the outcome of reading one artifact
type loadResult struct {
	Data    []byte
	Present bool
}

// readArtifact reads an artifact from dir, applying its policy.
// An absent Required artifact is an IOError; an absent Optional one
// yields Present=false and no error.
func readArtifact(dir string, a Artifact) (loadResult, error) {
	path := filepath.Join(dir, a.Name)
	data, err := os.ReadFile(path)
	if err != nil {
		if isNotExist(err) && a.Policy == Optional {
			return loadResult{}, nil
		}
		return loadResult{}, &domain.IOError{Op: "read " + a.What, Path: path, Err: err}
	}
	return loadResult{Data: data, Present: true}, nil
}

// decodeArtifact reads and decodes a JSON artifact into dest.
// Returns false when an Optional artifact is absent and dest was left untouched.
func decodeArtifact(dir string, a Artifact, dest any) (bool, error) {
	res, err := readArtifact(dir, a)
	if err != nil || !res.Present {
		return false, err
	}
	if err := json.Unmarshal(res.Data, dest); err != nil {
		return false, &domain.ParseError{What: a.What, Path: filepath.Join(dir, a.Name), Err: err}
	}
	return true, nil
}

// writeArtifact writes raw bytes for an artifact
func writeArtifact(dir string, a Artifact, data []byte) error {
	path := filepath.Join(dir, a.Name)
	if err := writeFileAtomic(path, data); err != nil {
		return &domain.IOError{Op: "write " + a.What, Path: path, Err: err}
	}
	return nil
}

// encodeArtifact writes v as two-space indented JSON
func encodeArtifact(dir string, a Artifact, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", a.What, err)
	}
	return writeArtifact(dir, a, data)
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so a reader never sees a half-written file. Atomicity is per
// file only.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// requireDir returns a NotFoundError when dir does not exist
func requireDir(dir, resourceType, id string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if isNotExist(err) {
			return domain.NewNotFound(resourceType, id)
		}
		return &domain.IOError{Op: "stat " + resourceType + " directory", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return domain.NewNotFound(resourceType, id)
	}
	return nil
}

// removeDir recursively removes dir; a missing dir is not an error
func removeDir(dir, resourceType string) error {
	if err := os.RemoveAll(dir); err != nil {
		return &domain.IOError{Op: "delete " + resourceType + " directory", Path: dir, Err: err}
	}
	return nil
}

// makeDir creates dir and any parents
func makeDir(dir, what string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.IOError{Op: "create " + what, Path: dir, Err: err}
	}
	return nil
}
