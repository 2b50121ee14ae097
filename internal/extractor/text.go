package extractor

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/harrison/dirloader/internal/models"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// TextExtractor returns a plain text file as a single document
type TextExtractor struct{}

// NewTextExtractor creates a new plain text extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reads the whole file; content must be valid UTF-8
func (e *TextExtractor) Extract(path string) ([]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewExtractionError(path, FormatText, fmt.Errorf("failed to read file: %w", err))
	}
	if !utf8.Valid(data) {
		return nil, NewExtractionError(path, FormatText, errInvalidUTF8)
	}
	return []models.Document{models.NewDocument(string(data), sourceMetadata(path))}, nil
}
