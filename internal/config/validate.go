package config

import (
	"unicode/utf8"

	"github.com/mrz1836/quill/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - GenPass length must be positive
//   - GenPass must have at least one character class enabled
//   - Sign timeout must not be negative
//   - Sign workers must be at least 1
//   - CSV delimiter must be exactly one character
//   - Log level must be a known level name
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	// Validate GenPass config
	if err := validateGenPassConfig(&cfg.GenPass); err != nil {
		return err
	}

	// Validate Sign config
	if err := validateSignConfig(&cfg.Sign); err != nil {
		return err
	}

	// Validate CSV config
	if err := validateCSVConfig(&cfg.CSV); err != nil {
		return err
	}

	// Validate Log config
	if err := validateLogConfig(&cfg.Log); err != nil {
		return err
	}

	return nil
}

// validateGenPassConfig checks password generator configuration values.
func validateGenPassConfig(cfg *GenPassConfig) error {
	if cfg.Length < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"genpass.length must be positive, got %d", cfg.Length)
	}

	if !cfg.Upper && !cfg.Lower && !cfg.Digits && !cfg.Symbols {
		return errors.Wrap(errors.ErrConfigInvalid,
			"genpass must have at least one character class enabled")
	}

	return nil
}

// validateSignConfig checks signing run configuration values.
func validateSignConfig(cfg *SignConfig) error {
	if cfg.Timeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"sign.timeout must not be negative, got %s", cfg.Timeout)
	}

	if cfg.Workers < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"sign.workers must be at least 1, got %d", cfg.Workers)
	}

	return nil
}

// validateCSVConfig checks tabular configuration values.
func validateCSVConfig(cfg *CSVConfig) error {
	if utf8.RuneCountInString(cfg.Delimiter) != 1 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"csv.delimiter must be exactly one character, got %q", cfg.Delimiter)
	}

	return nil
}

// validateLogConfig checks logging configuration values.
func validateLogConfig(cfg *LogConfig) error {
	switch cfg.Level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.level must be one of trace, debug, info, warn, error; got %q", cfg.Level)
	}
}
