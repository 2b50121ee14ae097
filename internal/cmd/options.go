package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/dirloader/internal/config"
	"github.com/harrison/dirloader/internal/loader"
)

// addDiscoveryFlags registers the flags shared by load and scan
func addDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .dirloader/config.yaml)")
	cmd.Flags().String("pattern", "", "Glob pattern relative to the root (default: **/[!.]*.<ext>)")
	cmd.Flags().String("ext", "", "File extension used by the default pattern (default: docx)")
	cmd.Flags().Bool("recursive", false, "Match files in subdirectories")
	cmd.Flags().Bool("include-hidden", false, "Include files and directories whose name starts with '.'")
}

// resolveConfig loads the config file and applies flags the user set explicitly.
// Unset flags never override the file.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	cfg.MergeWithFlags(config.Flags{
		Pattern:       changedString(cmd, "pattern"),
		Extension:     changedString(cmd, "ext"),
		Recursive:     changedBool(cmd, "recursive"),
		IncludeHidden: changedBool(cmd, "include-hidden"),
		SilentErrors:  changedBool(cmd, "silent-errors"),
		LogLevel:      changedString(cmd, "log-level"),
		LogDir:        changedString(cmd, "log-dir"),
		OutputFormat:  changedString(cmd, "format"),
		DBPath:        changedString(cmd, "db"),
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// changedString returns the flag value if the flag exists and was set
func changedString(cmd *cobra.Command, name string) *string {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

// changedBool returns the flag value if the flag exists and was set
func changedBool(cmd *cobra.Command, name string) *bool {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

// newRequest builds a load request for root from the resolved configuration
func newRequest(root string, cfg *config.Config) loader.Request {
	return loader.Request{
		Root:          root,
		Pattern:       cfg.Pattern,
		Extension:     cfg.Extension,
		Recursive:     cfg.Recursive,
		IncludeHidden: cfg.IncludeHidden,
		SilentErrors:  cfg.SilentErrors,
	}
}
