package converter

import (
	"context"
	"strings"

	docsysSvc "branchwrite/internal/domain/services/docsystem"
)

// passthrough stores its input unchanged apart from line endings
type passthrough struct {
	name       string
	extensions []string
}

// NewMarkdownConverter handles .md and .markdown files
func NewMarkdownConverter() docsysSvc.ContentConverter {
	return &passthrough{name: "markdown", extensions: []string{".md", ".markdown"}}
}

// NewTextConverter handles plain text, which is already valid Markdown
func NewTextConverter() docsysSvc.ContentConverter {
	return &passthrough{name: "plaintext", extensions: []string{".txt", ".text"}}
}

// Convert normalises CRLF line endings to LF
func (c *passthrough) Convert(ctx context.Context, input []byte) (string, error) {
	return strings.ReplaceAll(string(input), "\r\n", "\n"), nil
}

func (c *passthrough) SupportedExtensions() []string { return c.extensions }

func (c *passthrough) Name() string { return c.name }
