package extractor

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/harrison/dirloader/internal/models"
)

// Registry dispatches extraction to a per-format Extractor
type Registry struct {
	extractors map[Format]Extractor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[Format]Extractor),
	}
}

// NewDefaultRegistry creates a registry with every built-in extractor
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FormatDocx, NewDocxExtractor())
	r.Register(FormatMarkdown, NewMarkdownExtractor())
	r.Register(FormatText, NewTextExtractor())
	return r
}

// Register sets the extractor for a format, replacing any previous one
func (r *Registry) Register(format Format, e Extractor) {
	r.extractors[format] = e
}

// Lookup returns the extractor registered for format
func (r *Registry) Lookup(format Format) (Extractor, bool) {
	e, ok := r.extractors[format]
	return e, ok
}

// Formats returns the registered formats in declaration order
func (r *Registry) Formats() []Format {
	formats := make([]Format, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Extract detects the format of path and delegates to its extractor
func (r *Registry) Extract(path string) ([]models.Document, error) {
	format := DetectFormat(path)
	e, ok := r.extractors[format]
	if !ok {
		return nil, NewExtractionError(path, format, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path)))
	}

	docs, err := e.Extract(path)
	if err != nil {
		return nil, AsExtractionError(path, err)
	}
	return docs, nil
}
