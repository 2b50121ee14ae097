package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/harrison/dirloader/internal/models"
)

// setNoColor forces color output on or off for the duration of a test
func setNoColor(t *testing.T, noColor bool) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = noColor
	t.Cleanup(func() { color.NoColor = prev })
}

func TestDisplayWarning_TitleOnly(t *testing.T) {
	setNoColor(t, true)

	var buf bytes.Buffer
	Warning{Title: "Configuration Missing"}.Display(&buf)

	want := "⚠️  Warning: Configuration Missing\n"
	if got := buf.String(); got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestDisplayWarning_AllSections(t *testing.T) {
	setNoColor(t, true)

	var buf bytes.Buffer
	w := Warning{
		Title:      "Files Skipped",
		Message:    "Some files could not be read",
		Files:      []string{"a.docx", "b.docx"},
		Suggestion: "Check the files",
	}
	w.Display(&buf)

	want := "⚠️  Warning: Files Skipped\n" +
		"    Some files could not be read\n" +
		"    Affected files:\n" +
		"      1. a.docx\n" +
		"      2. b.docx\n" +
		"    Suggestion:\n" +
		"    Check the files\n"
	if got := buf.String(); got != want {
		t.Errorf("Display() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisplayWarning_SingleFile(t *testing.T) {
	setNoColor(t, true)

	var buf bytes.Buffer
	Warning{Title: "One", Files: []string{"only.docx"}}.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "Affected file:\n") {
		t.Errorf("expected singular heading, got %q", output)
	}
	if strings.Contains(output, "Affected files:") {
		t.Errorf("unexpected plural heading in %q", output)
	}
}

func TestDisplayWarning_Color(t *testing.T) {
	setNoColor(t, false)

	var buf bytes.Buffer
	Warning{Title: "Colored"}.Display(&buf)

	output := buf.String()
	if !strings.HasPrefix(output, "\x1b[33m") {
		t.Errorf("expected yellow prefix, got %q", output)
	}
	if !strings.HasSuffix(output, "\x1b[0m") {
		t.Errorf("expected reset suffix, got %q", output)
	}
}

func TestWarnSkippedFiles(t *testing.T) {
	tests := []struct {
		name      string
		skipped   []models.SkippedFile
		wantTitle string
		wantFiles []string
	}{
		{
			name:      "single file",
			skipped:   []models.SkippedFile{{Path: "/docs/c.docx", Error: "corrupt"}},
			wantTitle: "1 file skipped during load",
			wantFiles: []string{"/docs/c.docx: corrupt"},
		},
		{
			name: "multiple files keep order",
			skipped: []models.SkippedFile{
				{Path: "/docs/b.docx", Error: "bad zip"},
				{Path: "/docs/a.docx", Error: "missing body"},
			},
			wantTitle: "2 files skipped during load",
			wantFiles: []string{"/docs/b.docx: bad zip", "/docs/a.docx: missing body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WarnSkippedFiles(tt.skipped)
			if w.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", w.Title, tt.wantTitle)
			}
			if strings.Join(w.Files, "|") != strings.Join(tt.wantFiles, "|") {
				t.Errorf("Files = %v, want %v", w.Files, tt.wantFiles)
			}
			if !strings.Contains(w.Suggestion, "--silent-errors=false") {
				t.Errorf("Suggestion = %q, expected flag hint", w.Suggestion)
			}
		})
	}
}

func TestWarnHiddenFiles(t *testing.T) {
	one := WarnHiddenFiles([]string{".a.docx"})
	if one.Title != "1 hidden file was excluded" {
		t.Errorf("Title = %q", one.Title)
	}

	two := WarnHiddenFiles([]string{".a.docx", ".git/b.docx"})
	if two.Title != "2 hidden files were excluded" {
		t.Errorf("Title = %q", two.Title)
	}
	if len(two.Files) != 2 {
		t.Errorf("len(Files) = %d, want 2", len(two.Files))
	}
}
