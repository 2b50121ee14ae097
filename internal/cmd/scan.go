package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/dirloader/internal/display"
	"github.com/harrison/dirloader/internal/fileutil"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "List the files a load would extract",
		Long: `Run candidate discovery only and list the files a load would extract,
in the order they would be processed. No file is opened.

When hidden files are excluded, the files that were left out because of
a dot-prefixed path component are reported as a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	addDiscoveryFlags(cmd)

	return cmd
}

// runScan implements the scan command logic
func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	req := newRequest(args[0], cfg)

	result, err := fileutil.Glob(req.Root, fileutil.GlobOptions{
		Pattern:       req.EffectivePattern(),
		Recursive:     req.Recursive,
		IncludeHidden: req.IncludeHidden,
	})
	if err != nil {
		return err
	}

	progress := display.NewProgressIndicator(cmd.OutOrStdout(), req.Root, len(result.Files))
	progress.Start()
	for _, path := range result.Files {
		progress.Step(path)
	}
	progress.Complete()

	if req.IncludeHidden {
		return nil
	}

	hiddenReq := req
	hiddenReq.IncludeHidden = true
	hidden, err := display.FindHiddenFiles(req.Root, hiddenReq.EffectivePattern(), req.Recursive)
	if err != nil {
		return err
	}
	if len(hidden) > 0 {
		display.WarnHiddenFiles(hidden).Display(cmd.ErrOrStderr())
	}

	return nil
}
