package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	MaxProjectNameLength = 255

	// MaxBookNameLength is the maximum length for book names.
	MaxBookNameLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	// Same as names for consistency.
	MaxDocumentTitleLength = 255

	// MaxAuthorLength is the maximum length for author names.
	MaxAuthorLength = 255

	// MaxGenreLength is the maximum length for a book genre.
	MaxGenreLength = 100

	// MaxDescriptionLength is the maximum length for project and book descriptions.
	// Descriptions are shown in list views and the export info sheet,
	// not meant to hold manuscript text.
	MaxDescriptionLength = 5000

	// MaxCommitMessageLength is the maximum length for commit messages.
	MaxCommitMessageLength = 500

	// MaxImportSize bounds a single imported Markdown file (10MB),
	// matching the request body limit of the HTTP surface.
	MaxImportSize = 10 << 20

	// MaxImportArchiveSize bounds a zip upload holding many documents (50MB)
	MaxImportArchiveSize = 50 << 20
)
