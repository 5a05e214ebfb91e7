package services

// ContentAnalyzer derives statistics and fingerprints from document text
type ContentAnalyzer interface {
	// CountWords counts whitespace-delimited tokens
	CountWords(text string) int

	// CountCharacters returns the raw byte length
	CountCharacters(text string) int

	// CountLines counts newline-separated lines; "" is one line
	CountLines(text string) int

	// Hash fingerprints text for CommitInfo.document_hash
	Hash(text string) string
}
