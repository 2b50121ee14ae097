package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// recursivePrefix matches zero or more leading directories
const recursivePrefix = "**/"

// GlobOptions configures candidate discovery
type GlobOptions struct {
	// Pattern is a glob pattern relative to the root
	Pattern string
	// Recursive matches the pattern at any depth under the root
	Recursive bool
	// IncludeHidden keeps files with a path component starting with "."
	IncludeHidden bool
}

// GlobResult contains the results of candidate discovery
type GlobResult struct {
	// Pattern is the pattern actually matched after recursive/shallow adjustment
	Pattern string
	// Files holds root-joined paths of matched regular files in walk order
	Files []string
}

// PatternError reports a malformed glob pattern
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// DefaultPattern returns the pattern used when none is configured.
// Dot-named files are excluded at the pattern level unless includeHidden is set.
func DefaultPattern(ext string, includeHidden bool) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if includeHidden {
		return recursivePrefix + "*." + ext
	}
	return recursivePrefix + "[!.]*." + ext
}

// ValidatePattern returns a *PatternError if pattern is not a valid glob
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return &PatternError{Pattern: pattern, Err: errors.New("pattern is empty")}
	}
	if !doublestar.ValidatePattern(pattern) {
		return &PatternError{Pattern: pattern, Err: doublestar.ErrBadPattern}
	}
	return nil
}

// IsVisible reports whether no component of the relative path starts with "."
func IsVisible(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return false
		}
	}
	return true
}

// Glob finds regular files under root matching the provided options
func Glob(root string, opts GlobOptions) (*GlobResult, error) {
	pattern, err := effectivePattern(opts.Pattern, opts.Recursive)
	if err != nil {
		return nil, err
	}

	result := &GlobResult{
		Pattern: pattern,
		Files:   make([]string, 0),
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return result, nil
	}

	// Linked directories are never descended into
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(rel string, d fs.DirEntry) error {
		// Shallow discovery never returns files below the root
		if !opts.Recursive && strings.Contains(rel, "/") {
			return nil
		}

		if !opts.IncludeHidden && !IsVisible(rel) {
			return nil
		}

		path := filepath.Join(root, filepath.FromSlash(rel))
		regular, err := isRegularFile(path)
		if err != nil {
			return err
		}
		if regular {
			result.Files = append(result.Files, path)
		}
		return nil
	}, doublestar.WithFailOnIOErrors(), doublestar.WithNoFollow())

	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, &PatternError{Pattern: opts.Pattern, Err: err}
		}
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}

	return result, nil
}

// effectivePattern validates the pattern and adjusts it for recursive or shallow matching
func effectivePattern(pattern string, recursive bool) (string, error) {
	if err := ValidatePattern(pattern); err != nil {
		return "", err
	}

	if recursive {
		if pattern != "**" && !strings.HasPrefix(pattern, recursivePrefix) {
			pattern = recursivePrefix + pattern
		}
		return pattern, nil
	}

	for strings.HasPrefix(pattern, recursivePrefix) {
		pattern = strings.TrimPrefix(pattern, recursivePrefix)
	}
	if pattern == "" || pattern == "**" {
		pattern = "*"
	}
	return pattern, nil
}

// isRegularFile follows symlinks; dangling links and links to directories
// are not regular files
func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}
