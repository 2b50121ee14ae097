// Package loader turns a directory of documents into a flat list of
// extracted documents.
//
// A DirectoryLoader enumerates candidate files under a root with
// fileutil.Glob, hands each one to a single-file extractor.Extractor and tags
// every returned document with the path it was discovered under. Per-file
// failures either abort the batch or are logged and skipped, depending on
// Request.SilentErrors.
package loader

import (
	"time"

	"github.com/google/uuid"

	"github.com/harrison/dirloader/internal/extractor"
	"github.com/harrison/dirloader/internal/fileutil"
	"github.com/harrison/dirloader/internal/models"
)

// DefaultExtension is used to build the default pattern when a Request
// names neither a pattern nor an extension.
const DefaultExtension = "docx"

// Logger receives progress events from a load.
// Implementations must tolerate being shared across loaders.
type Logger interface {
	LogScanComplete(root string, candidates int)
	LogFileLoaded(path string, units int)
	LogFileSkipped(path string, err error)
	LogSummary(result models.LoadResult)
}

// Request describes one load. It is not modified by the loader.
type Request struct {
	// Root is the directory to search. A missing root yields no documents.
	Root string
	// Pattern is a glob relative to Root. Empty selects the default pattern
	// for Extension.
	Pattern string
	// Extension is used only when Pattern is empty.
	Extension string
	// Recursive matches Pattern at any depth instead of the top level only.
	Recursive bool
	// IncludeHidden keeps files whose relative path has a dot-prefixed component.
	IncludeHidden bool
	// SilentErrors logs and skips files that fail extraction instead of
	// aborting the load.
	SilentErrors bool
}

// EffectivePattern returns the pattern the load will glob with
func (r Request) EffectivePattern() string {
	if r.Pattern != "" {
		return r.Pattern
	}
	ext := r.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	return fileutil.DefaultPattern(ext, r.IncludeHidden)
}

// DirectoryLoader loads every matching file under a directory through a
// single-file extractor.
type DirectoryLoader struct {
	extractor extractor.Extractor
	logger    Logger
}

// New creates a DirectoryLoader.
// The logger parameter is optional and can be nil.
func New(ext extractor.Extractor, logger Logger) *DirectoryLoader {
	if ext == nil {
		panic("extractor cannot be nil")
	}

	return &DirectoryLoader{
		extractor: ext,
		logger:    logger,
	}
}

// fileResult is the outcome of extracting one candidate
type fileResult struct {
	path string
	docs []models.Document
	err  *extractor.ExtractionError
}

// Load extracts every candidate file and returns their documents in
// enumeration order. Each document's "source" metadata is set to the path
// the file was found under.
//
// Errors:
//   - *fileutil.PatternError when the pattern is malformed; no file is opened
//   - *extractor.ExtractionError for the first failing file unless
//     SilentErrors is set
//   - filesystem errors raised while walking Root
func (l *DirectoryLoader) Load(req Request) ([]models.Document, error) {
	docs, _, err := l.LoadWithResult(req)
	return docs, err
}

// LoadWithResult is Load plus a summary of the run. The summary is nil when
// an error is returned.
func (l *DirectoryLoader) LoadWithResult(req Request) ([]models.Document, *models.LoadResult, error) {
	startTime := time.Now()
	pattern := req.EffectivePattern()

	matches, err := fileutil.Glob(req.Root, fileutil.GlobOptions{
		Pattern:       pattern,
		Recursive:     req.Recursive,
		IncludeHidden: req.IncludeHidden,
	})
	if err != nil {
		return nil, nil, err
	}

	if l.logger != nil {
		l.logger.LogScanComplete(req.Root, len(matches.Files))
	}

	result := &models.LoadResult{
		RunID:      uuid.New().String(),
		Root:       req.Root,
		Pattern:    pattern,
		Candidates: len(matches.Files),
		Skipped:    []models.SkippedFile{},
		StartedAt:  startTime,
	}
	docs := []models.Document{}

	for _, path := range matches.Files {
		fr := l.extractFile(path)

		if fr.err != nil {
			if !req.SilentErrors {
				return nil, nil, fr.err
			}
			if l.logger != nil {
				l.logger.LogFileSkipped(fr.path, fr.err)
			}
			result.Skipped = append(result.Skipped, models.SkippedFile{
				Path:  fr.path,
				Error: fr.err.Error(),
			})
			continue
		}

		if l.logger != nil {
			l.logger.LogFileLoaded(fr.path, len(fr.docs))
		}
		result.Loaded++
		result.Units += len(fr.docs)
		docs = append(docs, fr.docs...)
	}

	result.Duration = time.Since(startTime)

	if l.logger != nil {
		l.logger.LogSummary(*result)
	}

	return docs, result, nil
}

// extractFile runs the extractor on one path and tags the documents it returns
func (l *DirectoryLoader) extractFile(path string) fileResult {
	docs, err := l.extractor.Extract(path)
	if err != nil {
		return fileResult{path: path, err: extractor.AsExtractionError(path, err)}
	}

	for i := range docs {
		docs[i].SetSource(path)
	}
	return fileResult{path: path, docs: docs}
}
