package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/errors"
)

// GlobalConfigDir returns the path to the global quill configuration directory.
// This is typically ~/.quill on Unix systems. Setting QUILL_HOME overrides
// the location entirely, which tests and sandboxed environments rely on.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if custom := os.Getenv(constants.EnvHome); custom != "" {
		return custom, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.QuillHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
// This is always .quill relative to the project root.
func ProjectConfigDir() string {
	return constants.QuillHome
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.quill/config.yaml on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .quill/config.yaml relative to the project root.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yaml")
}

// DefaultKeysDir returns the default directory for generated key files.
// This is typically ~/.quill/keys on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func DefaultKeysDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get default keys dir: %w", err)
	}
	return filepath.Join(dir, constants.KeysDir), nil
}

// DefaultLogsDir returns the default directory for rotated log files.
// This is typically ~/.quill/logs on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func DefaultLogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get default logs dir: %w", err)
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
