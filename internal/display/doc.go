// Package display renders user-facing terminal output for the dirloader CLI.
//
// # Warnings
//
// Warnings are printed in yellow with optional detail sections:
//
//	warning := display.WarnSkippedFiles(result.Skipped)
//	warning.Display(os.Stderr)
//
// # Candidate Listings
//
// ProgressIndicator lists discovered files one step at a time:
//
//	progress := display.NewProgressIndicator(os.Stdout, root, len(files))
//	progress.Start()
//	for _, file := range files {
//	    progress.Step(file)
//	}
//	progress.Complete()
//
// # Hidden Files
//
// FindHiddenFiles reports files a default scan would exclude because a path
// component starts with ".".
//
// Colors come from github.com/fatih/color and are disabled automatically
// when the output is not a terminal or NO_COLOR is set.
package display
