package utils

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ImportMetadata holds the front matter fields recognised on document import
type ImportMetadata struct {
	Title   *string
	DocType *string
	Status  *string
}

// ParseFrontmatter splits optional YAML front matter from a markdown body.
// Files that do not start with "---" have no front matter and are returned
// unchanged with nil metadata.
//
//	---
//	title: The Storm
//	doc_type: chapter
//	---
//	# Markdown content here
func ParseFrontmatter(content []byte) (map[string]interface{}, string, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, string(content), nil
	}

	lines := bytes.Split(content, []byte("\n"))

	closingDelim := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closingDelim = i
			break
		}
	}
	if closingDelim == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	var metadata map[string]interface{}
	if err := yaml.Unmarshal(bytes.Join(lines[1:closingDelim], []byte("\n")), &metadata); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	body := string(bytes.Join(lines[closingDelim+1:], []byte("\n")))
	return metadata, body, nil
}

// ValidateImportMetadata extracts the recognised fields. Unknown keys are ignored.
func ValidateImportMetadata(metadata map[string]interface{}) (*ImportMetadata, error) {
	result := &ImportMetadata{}
	if metadata == nil {
		return result, nil
	}

	fields := []struct {
		key    string
		target **string
	}{
		{"title", &result.Title},
		{"doc_type", &result.DocType},
		{"status", &result.Status},
	}

	for _, f := range fields {
		val, exists := metadata[f.key]
		if !exists {
			continue
		}
		str, ok := val.(string)
		if !ok || str == "" {
			return nil, fmt.Errorf("frontmatter field '%s' must be a non-empty string", f.key)
		}
		*f.target = &str
	}

	return result, nil
}
