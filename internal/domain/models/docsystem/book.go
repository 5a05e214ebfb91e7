package docsystem

import (
	"time"
)

// BookConfig is persisted as <book_id>/config.json
type BookConfig struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Author       string       `json:"author"`
	Genre        string       `json:"genre"`
	CreatedAt    time.Time    `json:"created_at"`
	LastModified time.Time    `json:"last_modified"`
	CoverImage   *string      `json:"cover_image"`
	Tags         []string     `json:"tags"`
	Settings     BookSettings `json:"settings"`
}

// BookSettings holds planning and editor preferences for a book
type BookSettings struct {
	OutlineEnabled   bool       `json:"outline_enabled"`
	TimelineEnabled  bool       `json:"timeline_enabled"`
	AutoSaveInterval uint32     `json:"auto_save_interval"` // minutes
	TargetWordCount  *uint32    `json:"target_word_count"`
	Deadline         *time.Time `json:"deadline"`
	EditorTheme      string     `json:"editor_theme"`
	FontSize         uint32     `json:"font_size"`
	LineHeight       uint32     `json:"line_height"`
	FontFamily       string     `json:"font_family"`
}

// DefaultBookSettings returns the settings assigned to new books
func DefaultBookSettings() BookSettings {
	return BookSettings{
		OutlineEnabled:   true,
		TimelineEnabled:  true,
		AutoSaveInterval: 5,
		EditorTheme:      "focus-writing",
		FontSize:         14,
		LineHeight:       24,
		FontFamily:       DefaultFontFamily,
	}
}

// Book is a config plus its ordered document descriptors.
// CurrentDocumentID, when set, should name an entry of Documents.
type Book struct {
	Config            BookConfig       `json:"config"`
	Documents         []DocumentConfig `json:"documents"`
	CurrentDocumentID *string          `json:"current_document_id"`
}

// FindDocument returns the index of the document with the given id, or -1
func (b *Book) FindDocument(id string) int {
	for i := range b.Documents {
		if b.Documents[i].ID == id {
			return i
		}
	}
	return -1
}
