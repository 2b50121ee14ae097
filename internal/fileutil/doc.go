// Package fileutil discovers candidate files under a root directory.
//
// Discovery is glob based and backs the first three steps of a directory
// load: match a pattern (optionally at any depth), keep regular files, and
// drop hidden entries unless they were requested.
//
// # Patterns
//
// Patterns use doublestar syntax relative to the root and always use "/"
// as the separator:
//
//	*         any run of characters within one path component
//	**        zero or more directories
//	?         a single character
//	[abc]     a character class, [!abc] negates it
//	{a,b}     alternatives
//
// An invalid pattern fails with *PatternError before the filesystem is read.
//
// # Recursive and shallow discovery
//
// With Recursive set, a pattern that does not already start with "**/" is
// matched at every depth (as if prefixed with "**/"). Without it, leading
// "**/" segments are dropped and only entries directly under the root are
// returned, even when the pattern names a subdirectory.
//
// # Visibility
//
// A path is hidden when any component relative to the root starts with ".",
// so both ".notes.docx" and ".cache/report.docx" are hidden. Hidden files are
// dropped unless IncludeHidden is set. DefaultPattern additionally excludes
// dot-named files at the pattern level.
//
// # Ordering
//
// Files are returned in walk order (lexical within each directory). Results
// are not re-sorted, so callers observe the same order on every run over an
// unchanged tree.
//
// # Usage
//
//	result, err := fileutil.Glob("/docs", fileutil.GlobOptions{
//	    Pattern:   fileutil.DefaultPattern("docx", false),
//	    Recursive: true,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Files {
//	    fmt.Println(path)
//	}
//
// A root that does not exist, or is not a directory, yields an empty result.
// Other filesystem errors (permission denied while walking) are returned.
package fileutil
