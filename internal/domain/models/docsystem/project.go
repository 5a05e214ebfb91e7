package docsystem

import (
	"time"
)

// DefaultProjectVersion is the config version stamped on new projects
const DefaultProjectVersion = "1.0.0"

// DefaultFontFamily is the editor font stack shared by project and book settings
const DefaultFontFamily = "'JetBrains Mono', 'Fira Code', 'Monaco', 'Consolas', monospace"

// ProjectConfig is persisted as <project_id>/config.json
type ProjectConfig struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified time.Time       `json:"last_modified"`
	Version      string          `json:"version"`
	Author       string          `json:"author"`
	Settings     ProjectSettings `json:"settings"`
}

// ProjectSettings holds editor and auto-commit preferences for a project
type ProjectSettings struct {
	AutoSaveInterval    uint32 `json:"auto_save_interval"`    // minutes
	AutoCommitThreshold uint32 `json:"auto_commit_threshold"` // words
	BackupEnabled       bool   `json:"backup_enabled"`
	BackupInterval      uint32 `json:"backup_interval"` // hours
	EditorTheme         string `json:"editor_theme"`
	FontSize            uint32 `json:"font_size"`
	LineHeight          uint32 `json:"line_height"`
	FontFamily          string `json:"font_family"`
}

// DefaultProjectSettings returns the settings assigned to new projects
func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{
		AutoSaveInterval:    5,
		AutoCommitThreshold: 50,
		BackupEnabled:       true,
		BackupInterval:      24,
		EditorTheme:         "focus-writing",
		FontSize:            14,
		LineHeight:          24,
		FontFamily:          DefaultFontFamily,
	}
}

// DocumentMetadata describes a project's single document body
type DocumentMetadata struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	LastModified   time.Time `json:"last_modified"`
	WordCount      uint32    `json:"word_count"`
	CharacterCount uint32    `json:"character_count"`
	LineCount      uint32    `json:"line_count"`
	Tags           []string  `json:"tags"`
}

// CommitInfo is one entry of commits.json. The full snapshot lives in
// commit_data/<id>.md.
type CommitInfo struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Message        string    `json:"message"`
	IsAutoCommit   bool      `json:"is_auto_commit"`
	DocumentHash   string    `json:"document_hash"`
	WordCount      uint32    `json:"word_count"`
	CharacterCount uint32    `json:"character_count"`
}

// Project is the full legacy single-document entity.
// Commits are ordered newest first.
type Project struct {
	Config           ProjectConfig     `json:"config"`
	DocumentContent  string            `json:"document_content"`
	DocumentMetadata DocumentMetadata  `json:"document_metadata"`
	Commits          []CommitInfo      `json:"commits"`
	CommitData       map[string]string `json:"commit_data"` // commit id -> snapshot
}

// FindCommit returns the commit with the given id, or nil
func (p *Project) FindCommit(id string) *CommitInfo {
	for i := range p.Commits {
		if p.Commits[i].ID == id {
			return &p.Commits[i]
		}
	}
	return nil
}

// ProjectStats is derived from a freshly loaded project, never stored
type ProjectStats struct {
	TotalCommits          int    `json:"total_commits"`
	AutoCommits           int    `json:"auto_commits"`
	ManualCommits         int    `json:"manual_commits"`
	CurrentWordCount      uint32 `json:"current_word_count"`
	CurrentCharacterCount uint32 `json:"current_character_count"`
	CurrentLineCount      uint32 `json:"current_line_count"`
}
