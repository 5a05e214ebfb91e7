package docsystem

// ImportResult reports what a bulk import did with each archive entry.
// A failed entry does not stop the rest of the archive.
type ImportResult struct {
	Summary   ImportSummary      `json:"summary"`
	Errors    []ImportError      `json:"errors"`
	Documents []ImportedDocument `json:"documents"`
}

// ImportSummary contains aggregate counts for an import
type ImportSummary struct {
	Created    int `json:"created"`
	Skipped    int `json:"skipped"` // unsupported file types
	Failed     int `json:"failed"`
	TotalFiles int `json:"total_files"`
}

// ImportError names the archive entry that could not be imported
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportedDocument maps an archive entry to the document created from it
type ImportedDocument struct {
	File  string `json:"file"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Order uint32 `json:"order"`
}
