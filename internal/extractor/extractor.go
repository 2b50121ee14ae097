// Package extractor provides single-file text extractors.
//
// Each extractor turns one file into zero or more models.Document values and
// reports failures as *ExtractionError. The directory loader depends only on
// the Extractor interface, so formats can be swapped or combined through a
// Registry without touching traversal code.
package extractor

import (
	"path/filepath"
	"strings"

	"github.com/harrison/dirloader/internal/models"
)

// Format represents the format of a document file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatDocx represents a Word (.docx) document
	FormatDocx
	// FormatMarkdown represents a Markdown (.md, .markdown) document
	FormatMarkdown
	// FormatText represents a plain text (.txt, .text) document
	FormatText
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatDocx:
		return "docx"
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// Extensions returns the file extensions mapped to the format
func (f Format) Extensions() []string {
	switch f {
	case FormatDocx:
		return []string{".docx"}
	case FormatMarkdown:
		return []string{".md", ".markdown"}
	case FormatText:
		return []string{".txt", ".text"}
	default:
		return nil
	}
}

// Extractor is the interface that all single-file extractors must implement
type Extractor interface {
	// Extract reads the file at path and returns its documents.
	// Failures are reported as *ExtractionError.
	Extract(path string) ([]models.Document, error)
}

// ExtractorFunc adapts an ordinary function to the Extractor interface
type ExtractorFunc func(path string) ([]models.Document, error)

// Extract calls f(path)
func (f ExtractorFunc) Extract(path string) ([]models.Document, error) {
	return f(path)
}

// DetectFormat detects the document format based on file extension
// Supported extensions:
//   - .docx -> FormatDocx
//   - .md, .markdown -> FormatMarkdown
//   - .txt, .text -> FormatText
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return FormatDocx
	case ".md", ".markdown":
		return FormatMarkdown
	case ".txt", ".text":
		return FormatText
	default:
		return FormatUnknown
	}
}

// sourceMetadata returns a metadata map seeded with the file path
func sourceMetadata(path string) map[string]any {
	return map[string]any{models.MetadataSource: path}
}
