package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/dirloader/internal/fileutil"
)

// StoreConfig represents run persistence configuration
type StoreConfig struct {
	// Enabled persists every load to the SQLite store
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite database
	DBPath string `yaml:"db_path"`
}

// Config represents dirloader configuration options
type Config struct {
	// Pattern is the glob matched against paths under the root.
	// Empty selects the default pattern for Extension.
	Pattern string `yaml:"pattern"`

	// Extension is the file extension used by the default pattern
	Extension string `yaml:"extension"`

	// Recursive matches the pattern at any depth below the root
	Recursive bool `yaml:"recursive"`

	// IncludeHidden keeps dot-prefixed files and directories
	IncludeHidden bool `yaml:"include_hidden"`

	// SilentErrors logs and skips files that fail extraction
	SilentErrors bool `yaml:"silent_errors"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written. Empty disables file logging.
	LogDir string `yaml:"log_dir"`

	// OutputFormat is the encoding of exported documents (json or yaml)
	OutputFormat string `yaml:"output_format"`

	// Store contains run persistence configuration
	Store StoreConfig `yaml:"store"`
}

// validOutputFormats lists the supported export encodings
var validOutputFormats = map[string]bool{
	"json": true,
	"yaml": true,
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Pattern:       "",
		Extension:     "docx",
		Recursive:     false,
		IncludeHidden: false,
		SilentErrors:  false,
		LogLevel:      "info",
		LogDir:        "",
		OutputFormat:  "json",
		Store: StoreConfig{
			Enabled: false,
			DBPath:  filepath.Join(".dirloader", "dirloader.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Booleans default to false, so presence is detected from the raw map
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.Pattern != "" {
		cfg.Pattern = fileCfg.Pattern
	}
	if fileCfg.Extension != "" {
		cfg.Extension = fileCfg.Extension
	}
	if _, exists := rawMap["recursive"]; exists {
		cfg.Recursive = fileCfg.Recursive
	}
	if _, exists := rawMap["include_hidden"]; exists {
		cfg.IncludeHidden = fileCfg.IncludeHidden
	}
	if _, exists := rawMap["silent_errors"]; exists {
		cfg.SilentErrors = fileCfg.SilentErrors
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}

	if storeSection, exists := rawMap["store"]; exists && storeSection != nil {
		storeMap, _ := storeSection.(map[string]interface{})
		if _, exists := storeMap["enabled"]; exists {
			cfg.Store.Enabled = fileCfg.Store.Enabled
		}
		if _, exists := storeMap["db_path"]; exists {
			// Explicitly set db_path, even if empty string
			cfg.Store.DBPath = fileCfg.Store.DBPath
		}
	}

	cfg.Extension = normalizeExtension(cfg.Extension)

	return cfg, nil
}

// Flags holds CLI overrides. Nil fields leave the configured value alone.
type Flags struct {
	Pattern       *string
	Extension     *string
	Recursive     *bool
	IncludeHidden *bool
	SilentErrors  *bool
	LogLevel      *string
	LogDir        *string
	OutputFormat  *string
	DBPath        *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// Setting DBPath also enables the store
func (c *Config) MergeWithFlags(flags Flags) {
	if flags.Pattern != nil {
		c.Pattern = *flags.Pattern
	}
	if flags.Extension != nil {
		c.Extension = normalizeExtension(*flags.Extension)
	}
	if flags.Recursive != nil {
		c.Recursive = *flags.Recursive
	}
	if flags.IncludeHidden != nil {
		c.IncludeHidden = *flags.IncludeHidden
	}
	if flags.SilentErrors != nil {
		c.SilentErrors = *flags.SilentErrors
	}
	if flags.LogLevel != nil {
		c.LogLevel = *flags.LogLevel
	}
	if flags.LogDir != nil {
		c.LogDir = *flags.LogDir
	}
	if flags.OutputFormat != nil {
		c.OutputFormat = *flags.OutputFormat
	}
	if flags.DBPath != nil {
		c.Store.DBPath = *flags.DBPath
		c.Store.Enabled = *flags.DBPath != ""
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Pattern != "" {
		if err := fileutil.ValidatePattern(c.Pattern); err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	} else {
		if c.Extension == "" {
			return fmt.Errorf("extension cannot be empty when no pattern is set")
		}
		if strings.ContainsAny(c.Extension, `/\*?[]{}`) {
			return fmt.Errorf("invalid extension %q, must be a plain file extension", c.Extension)
		}
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("invalid output_format %q, must be one of: json, yaml", c.OutputFormat)
	}

	if c.Store.Enabled && c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path cannot be empty when the store is enabled")
	}

	return nil
}

// normalizeExtension strips surrounding whitespace and a leading dot
func normalizeExtension(ext string) string {
	return strings.TrimPrefix(strings.TrimSpace(ext), ".")
}
