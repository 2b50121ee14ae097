package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/dirloader/internal/models"
)

// colorScheme defines consistent colors for summary counts.
// Green: loaded files and documents
// Red: skipped files
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for summaries.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatColorizedCounts renders the counts of a load on one line.
// Format: "candidates: N, loaded: N, skipped: N, documents: N"
// Skipped is red only when non-zero.
func formatColorizedCounts(result models.LoadResult, scheme *colorScheme) string {
	parts := []string{
		formatColorizedMetric("candidates", result.Candidates, scheme),
		fmt.Sprintf("%s: %s", scheme.success.Sprint("loaded"), scheme.value.Sprintf("%d", result.Loaded)),
	}

	if result.HasSkipped() {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.fail.Sprint("skipped"), scheme.fail.Sprintf("%d", result.SkippedCount())))
	} else {
		parts = append(parts, formatColorizedMetric("skipped", 0, scheme))
	}

	parts = append(parts, fmt.Sprintf("%s: %s", scheme.success.Sprint("documents"), scheme.value.Sprintf("%d", result.Units)))

	return strings.Join(parts, ", ")
}
