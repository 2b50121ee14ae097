package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/dirloader/internal/config"
	"github.com/harrison/dirloader/internal/display"
	"github.com/harrison/dirloader/internal/extractor"
	"github.com/harrison/dirloader/internal/filelock"
	"github.com/harrison/dirloader/internal/loader"
	"github.com/harrison/dirloader/internal/logger"
	"github.com/harrison/dirloader/internal/models"
	"github.com/harrison/dirloader/internal/store"
)

// NewLoadCommand creates the load command
func NewLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <root>",
		Short: "Extract documents from every matching file under a directory",
		Long: `Extract text from every file under <root> that matches the glob pattern.

Each matching file is passed to the extractor for its format (.docx, .md,
.txt) and every resulting document is tagged with metadata.source set to the
file's path. Documents are written to stdout, or to --output, as JSON or YAML.

By default the first extraction failure aborts the load. With --silent-errors
the failure is logged as a warning and the file is skipped.

Configuration is loaded from .dirloader/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # All non-hidden .docx files directly under ./docs
  dirloader load ./docs

  # Markdown files at any depth, skipping unreadable ones
  dirloader load ./notes --ext md --recursive --silent-errors

  # Custom pattern, YAML output written to a file
  dirloader load ./docs --pattern 'reports/**/*.docx' --recursive --format yaml --output out.yaml

  # Persist the run to a SQLite store
  dirloader load ./docs --db .dirloader/dirloader.db`,
		Args: cobra.ExactArgs(1),
		RunE: runLoad,
	}

	addDiscoveryFlags(cmd)
	cmd.Flags().Bool("silent-errors", false, "Log and skip files that fail extraction instead of aborting")
	cmd.Flags().StringP("output", "o", "", "Write documents to this file instead of stdout")
	cmd.Flags().Duration("lock-timeout", filelock.DefaultLockTimeout, "How long to wait for another writer holding the --output lock")
	cmd.Flags().String("format", "", "Output format: json or yaml (default: json)")
	cmd.Flags().String("db", "", "Persist the run to this SQLite database")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: info)")
	cmd.Flags().String("log-dir", "", "Also write a run log to this directory")

	return cmd
}

// runLoad implements the load command logic
func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()

	eventLogger, closeLogs, err := newEventLogger(stderr, cfg)
	if err != nil {
		return err
	}
	defer closeLogs()

	req := newRequest(args[0], cfg)
	eventLogger.LogDebug(fmt.Sprintf("Loading %s (pattern=%q ext=%s recursive=%t include-hidden=%t silent-errors=%t)",
		req.Root, req.Pattern, req.Extension, req.Recursive, req.IncludeHidden, req.SilentErrors))

	l := loader.New(extractor.NewDefaultRegistry(), eventLogger)

	docs, result, err := l.LoadWithResult(req)
	if err != nil {
		return err
	}

	data, err := encodeDocuments(docs, cfg.OutputFormat)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	lockTimeout, _ := cmd.Flags().GetDuration("lock-timeout")
	if err := writeDocuments(cmd.OutOrStdout(), outputPath, data, lockTimeout); err != nil {
		return err
	}
	if outputPath != "" {
		eventLogger.LogInfo(fmt.Sprintf("Wrote %d documents to %s", len(docs), outputPath))
	}

	if cfg.Store.Enabled {
		if err := saveRun(cmd, cfg.Store.DBPath, result, docs); err != nil {
			return err
		}
	}

	if result.HasSkipped() {
		display.WarnSkippedFiles(result.Skipped).Display(stderr)
	}

	return nil
}

// newEventLogger builds the console logger plus an optional run log file.
// The returned func closes the run log.
func newEventLogger(w io.Writer, cfg *config.Config) (*logger.MultiLogger, func(), error) {
	loggers := []logger.EventLogger{logger.NewConsoleLogger(w, cfg.LogLevel)}

	if cfg.LogDir == "" {
		return logger.NewMultiLogger(loggers...), func() {}, nil
	}

	fileLogger, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	loggers = append(loggers, fileLogger)

	return logger.NewMultiLogger(loggers...), func() { fileLogger.Close() }, nil
}

// saveRun persists the run and its documents to the store at dbPath
func saveRun(cmd *cobra.Command, dbPath string, result *models.LoadResult, docs []models.Document) error {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store %s: %w", dbPath, err)
	}
	defer s.Close()

	if err := s.SaveRun(cmd.Context(), result, docs); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %s to %s\n", result.RunID, dbPath)
	return nil
}
