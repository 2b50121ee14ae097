package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/dirloader/internal/config"
	"github.com/harrison/dirloader/internal/store"
)

// NewRunsCommand creates the 'dirloader runs' command group
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List loads persisted to the SQLite store",
		Long: `List loads saved with 'dirloader load --db', newest first.

The database defaults to store.db_path from the config file.`,
		Args: cobra.NoArgs,
		RunE: runRunsList,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .dirloader/config.yaml)")
	cmd.PersistentFlags().String("db", "", "SQLite database to read (default: store.db_path)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	cmd.AddCommand(newRunsShowCommand())
	cmd.AddCommand(newRunsDeleteCommand())

	return cmd
}

func newRunsShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a stored run and its documents",
		Args:  cobra.ExactArgs(1),
		RunE:  runRunsShow,
	}
	cmd.Flags().String("format", "", "Document format: json or yaml (default: json)")
	return cmd
}

func newRunsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run and its documents",
		Args:  cobra.ExactArgs(1),
		RunE:  runRunsDelete,
	}
}

// openRunStore opens the configured store. It returns a nil store when the
// database file does not exist yet, so read-only commands never create it.
func openRunStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	dbPath := cfg.Store.DBPath
	if dbPath == "" {
		return nil, nil, fmt.Errorf("no database configured, use --db or store.db_path")
	}

	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return nil, cfg, nil
	}

	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store %s: %w", dbPath, err)
	}
	return s, cfg, nil
}

// runRunsList lists stored runs
func runRunsList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, cfg, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	if s == nil {
		fmt.Fprintf(out, "No runs found in %s\n", cfg.Store.DBPath)
		return nil
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs found in %s\n", cfg.Store.DBPath)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSTARTED\tROOT\tLOADED\tDOCUMENTS\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\t%s\n",
			run.RunID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Root,
			run.Loaded,
			run.Candidates,
			run.Units,
			run.Duration,
		)
	}
	return w.Flush()
}

// runRunsShow prints one run's summary followed by its documents
func runRunsShow(cmd *cobra.Command, args []string) error {
	runID := args[0]

	s, cfg, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: %s", store.ErrRunNotFound, runID)
	}
	defer s.Close()

	run, err := s.GetRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	docs, err := s.ListDocuments(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Run:        %s\n", run.RunID)
	fmt.Fprintf(errOut, "Root:       %s\n", run.Root)
	fmt.Fprintf(errOut, "Pattern:    %s\n", run.Pattern)
	fmt.Fprintf(errOut, "Started:    %s\n", run.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(errOut, "Loaded:     %d/%d files, %d documents\n", run.Loaded, run.Candidates, run.Units)
	for _, skipped := range run.Skipped {
		fmt.Fprintf(errOut, "Skipped:    %s: %s\n", skipped.Path, skipped.Error)
	}

	data, err := encodeDocuments(docs, cfg.OutputFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// runRunsDelete removes one run from the store
func runRunsDelete(cmd *cobra.Command, args []string) error {
	runID := args[0]

	s, _, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: %s", store.ErrRunNotFound, runID)
	}
	defer s.Close()

	if err := s.DeleteRun(cmd.Context(), runID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", runID)
	return nil
}
