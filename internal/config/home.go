package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// HomeDirName is the per-project directory holding config, logs and the store
	HomeDirName = ".dirloader"
	// ConfigFileName is the config file inside the home directory
	ConfigFileName = "config.yaml"
	// HomeEnvVar overrides the home directory location
	HomeEnvVar = "DIRLOADER_HOME"
)

// GetHome returns the dirloader home directory without creating it.
// Priority order:
//  1. DIRLOADER_HOME environment variable (if set)
//  2. .dirloader under the current working directory
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, HomeDirName), nil
}

// DefaultConfigPath returns the config file inside the home directory
func DefaultConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}
