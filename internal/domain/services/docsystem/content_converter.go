package docsystem

import "context"

// ContentConverter turns an imported file into the Markdown body stored in
// content.md. One converter serves one family of file extensions.
type ContentConverter interface {
	// Convert returns the Markdown rendering of input
	Convert(ctx context.Context, input []byte) (markdown string, err error)

	// SupportedExtensions lists handled extensions with the leading dot
	SupportedExtensions() []string

	// Name identifies the converter in logs
	Name() string
}
