package docsystem

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"branchwrite/internal/domain/services"
)

type contentAnalyzerService struct{}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() services.ContentAnalyzer {
	return &contentAnalyzerService{}
}

// CountWords counts whitespace-delimited non-empty tokens.
// Markdown syntax is counted as written.
func (s *contentAnalyzerService) CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters returns the byte length of text
func (s *contentAnalyzerService) CountCharacters(text string) int {
	return len(text)
}

// CountLines counts "\n"-separated lines, so a trailing newline opens a new line
func (s *contentAnalyzerService) CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}

// Hash returns the xxhash64 of text as 16 hex digits
func (s *contentAnalyzerService) Hash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
