// Package config provides configuration management for quill.
//
// Configuration is loaded from multiple sources with the following
// precedence (highest first):
//  1. Environment variables (QUILL_* prefix)
//  2. Project config (.quill/config.yaml)
//  3. Global config (~/.quill/config.yaml)
//  4. Built-in defaults
//
// The signature scheme is deliberately absent from this package: every
// signing and verification call names its scheme explicitly via --format,
// and no config key or environment variable may supply one.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config is the root configuration structure for quill.
// It contains all configuration sections for the application.
type Config struct {
	// Keys contains settings for key file storage.
	Keys KeysConfig `yaml:"keys" mapstructure:"keys"`

	// GenPass contains settings for the password generator.
	GenPass GenPassConfig `yaml:"genpass" mapstructure:"genpass"`

	// Sign contains settings for signing runs.
	Sign SignConfig `yaml:"sign" mapstructure:"sign"`

	// CSV contains settings for tabular data conversion.
	CSV CSVConfig `yaml:"csv" mapstructure:"csv"`

	// Log contains settings for logging behavior.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// KeysConfig contains settings for where generated key files live.
type KeysConfig struct {
	// Dir is the directory keygen writes key files into and the directory
	// bare key names given to --key are resolved against.
	// Empty means the default location under the quill home directory.
	// Default: "" (resolved to ~/.quill/keys)
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// GenPassConfig contains settings for the password generator.
// Key generation reuses the same generator but always with its own fixed
// length and full character coverage, so these settings only shape the
// genpass command.
type GenPassConfig struct {
	// Length is the number of characters in a generated password.
	// Default: 16
	Length int `yaml:"length" mapstructure:"length"`

	// Upper includes uppercase letters in generated passwords.
	// Default: true
	Upper bool `yaml:"upper" mapstructure:"upper"`

	// Lower includes lowercase letters in generated passwords.
	// Default: true
	Lower bool `yaml:"lower" mapstructure:"lower"`

	// Digits includes digits in generated passwords.
	// Default: true
	Digits bool `yaml:"digits" mapstructure:"digits"`

	// Symbols includes symbol characters in generated passwords.
	// Default: true
	Symbols bool `yaml:"symbols" mapstructure:"symbols"`
}

// SignConfig contains settings for signing runs.
type SignConfig struct {
	// Timeout bounds an entire signing run across all of its inputs.
	// Zero disables the bound. Individual operations are local and fast,
	// so this mainly guards runs that block on stdin.
	// Default: 0s
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Workers caps the number of concurrent signing goroutines when a
	// run has multiple inputs.
	// Default: 4
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CSVConfig contains settings for reading tabular data.
type CSVConfig struct {
	// Delimiter is the field separator used when parsing CSV input.
	// Must be exactly one character.
	// Default: ","
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// LogConfig contains logging behavior settings.
type LogConfig struct {
	// Level is the minimum level written to the log sinks.
	// One of: trace, debug, info, warn, error.
	// The -v and -q flags override this per invocation.
	// Default: "info"
	Level string `yaml:"level" mapstructure:"level"`

	// FileEnabled writes a rotated JSON log file under the quill home
	// directory in addition to console output.
	// Default: true
	FileEnabled bool `yaml:"file_enabled" mapstructure:"file_enabled"`
}

// KeysDir returns the effective key directory, resolving an empty
// configured value to the default location under the quill home.
func (c *Config) KeysDir() (string, error) {
	if c.Keys.Dir != "" {
		return c.Keys.Dir, nil
	}
	return DefaultKeysDir()
}

// KeyPath resolves a key reference against the effective key directory.
// Absolute paths and paths containing a separator are used as-is; bare
// names are looked up inside the key directory. This lets commands accept
// both `--key ./ci/blake3.key` and `--key blake3.key`.
func (c *Config) KeyPath(ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if filepath.IsAbs(ref) || strings.ContainsRune(ref, filepath.Separator) {
		return ref, nil
	}
	dir, err := c.KeysDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ref), nil
}
