package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	docsysSvc "branchwrite/internal/domain/services/docsystem"
)

// DefaultExtension is assumed for imports that arrive without a filename
const DefaultExtension = ".md"

// Registry routes imported files to a converter by extension.
// Registration happens at setup; lookups are read-only afterwards.
type Registry struct {
	converters map[string]docsysSvc.ContentConverter
}

// NewRegistry creates a registry with the Markdown, plain text and HTML
// converters registered
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[string]docsysSvc.ContentConverter)}
	r.Register(NewMarkdownConverter())
	r.Register(NewTextConverter())
	r.Register(NewHTMLConverter())
	return r
}

// Register maps each of the converter's extensions to it, replacing any
// earlier registration
func (r *Registry) Register(c docsysSvc.ContentConverter) {
	for _, ext := range c.SupportedExtensions() {
		r.converters[normalizeExt(ext)] = c
	}
}

// Lookup returns the converter for filename's extension, or nil.
// An empty filename resolves to Markdown.
func (r *Registry) Lookup(filename string) docsysSvc.ContentConverter {
	ext := DefaultExtension
	if filename != "" {
		ext = filepath.Ext(filename)
	}
	return r.converters[normalizeExt(ext)]
}

// Supports reports whether filename has a registered converter
func (r *Registry) Supports(filename string) bool {
	return r.Lookup(filename) != nil
}

// Convert renders data as Markdown using the converter for filename
func (r *Registry) Convert(ctx context.Context, filename string, data []byte) (string, error) {
	c := r.Lookup(filename)
	if c == nil {
		return "", fmt.Errorf("unsupported file type %q (supported: %s)",
			filepath.Ext(filename), strings.Join(r.Extensions(), ", "))
	}
	return c.Convert(ctx, data)
}

// Extensions returns the registered extensions, sorted
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
