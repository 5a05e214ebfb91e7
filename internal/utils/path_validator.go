package utils

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxEntityIDLength bounds ids used as directory and file names
	MaxEntityIDLength = 128
)

var (
	// Ids become path segments: alphanumerics, hyphens and underscores only,
	// never starting with a separator-like character
	entityIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_]*$`)
)

// ValidateEntityID checks that id is safe to use as a single path segment
func ValidateEntityID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	if len(id) > MaxEntityIDLength {
		return fmt.Errorf("id exceeds maximum length of %d characters", MaxEntityIDLength)
	}

	if !entityIDRegex.MatchString(id) {
		return fmt.Errorf("id %q contains invalid characters (only alphanumeric, hyphens and underscores allowed)", id)
	}

	return nil
}

// NormalizeName trims a display name and collapses internal whitespace runs
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
