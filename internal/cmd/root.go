package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dirloader
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirloader",
		Short: "Batch text extraction from document directories",
		Long: `dirloader finds document files under a directory and extracts their text.

Files are selected with a glob pattern (by default every non-hidden .docx file),
passed one at a time to a format-specific extractor, and returned as documents
tagged with the path they came from. Extraction failures either abort the load
or, with --silent-errors, are logged and skipped.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewLoadCommand())
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewFormatsCommand())
	cmd.AddCommand(NewRunsCommand())

	return cmd
}
