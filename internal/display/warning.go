package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/dirloader/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnSkippedFiles builds the warning shown after a load that skipped files.
// Each entry reads "path: error".
func WarnSkippedFiles(skipped []models.SkippedFile) Warning {
	files := make([]string, 0, len(skipped))
	for _, s := range skipped {
		files = append(files, fmt.Sprintf("%s: %s", s.Path, s.Error))
	}

	noun := "files"
	if len(skipped) == 1 {
		noun = "file"
	}

	return Warning{
		Title:      fmt.Sprintf("%d %s skipped during load", len(skipped), noun),
		Message:    "Extraction failed and silent errors are enabled, so these files were left out.",
		Files:      files,
		Suggestion: "Fix or remove the files, or run with --silent-errors=false to stop at the first failure",
	}
}

// WarnHiddenFiles builds the warning shown when a scan excluded hidden files
func WarnHiddenFiles(hidden []string) Warning {
	noun := "files were"
	if len(hidden) == 1 {
		noun = "file was"
	}

	return Warning{
		Title:      fmt.Sprintf("%d hidden %s excluded", len(hidden), noun),
		Files:      hidden,
		Suggestion: "Use --include-hidden to load them",
	}
}
