package extractor

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when no extractor handles a file's format
var ErrUnsupportedFormat = errors.New("unsupported format")

// ExtractionError reports that a single file could not be extracted
type ExtractionError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Format == FormatUnknown {
		return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to extract %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates an ExtractionError for path
func NewExtractionError(path string, format Format, err error) *ExtractionError {
	return &ExtractionError{
		Path:   path,
		Format: format,
		Err:    err,
	}
}

// AsExtractionError returns err as an *ExtractionError.
// Errors that are not already extraction errors are wrapped with the path
// and the format detected from it.
func AsExtractionError(path string, err error) *ExtractionError {
	if err == nil {
		return nil
	}
	var extractErr *ExtractionError
	if errors.As(err, &extractErr) {
		return extractErr
	}
	return NewExtractionError(path, DetectFormat(path), err)
}

// IsExtractionError reports whether err is or wraps an *ExtractionError
func IsExtractionError(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr)
}
