package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// ProgressIndicator lists discovered candidate files with a step counter
type ProgressIndicator struct {
	writer     io.Writer
	root       string
	totalFiles int
	current    int
}

// NewProgressIndicator creates a new progress indicator for files under root
func NewProgressIndicator(w io.Writer, root string, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		root:       root,
		totalFiles: total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Scanning %s:\n", p.root)
}

// Step displays the next file as "[N/Total] path", relative to the root when possible
func (p *ProgressIndicator) Step(path string) {
	p.current++
	color.New(color.FgCyan).Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.totalFiles, p.relative(path))
}

// Complete displays the final count with a green checkmark
func (p *ProgressIndicator) Complete() {
	noun := "candidate files"
	if p.totalFiles == 1 {
		noun = "candidate file"
	}
	fmt.Fprintf(p.writer, "%s Found %d %s\n", color.GreenString("✓"), p.totalFiles, noun)
}

func (p *ProgressIndicator) relative(path string) string {
	return relativeTo(p.root, path)
}

// relativeTo returns path relative to root, or path itself if it is not below root
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
