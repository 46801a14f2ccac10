package config

import (
	"github.com/mrz1836/quill/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files and environment variables.
//
// The values here must stay in sync with setDefaults in load.go, which
// registers the same defaults on the Viper instance.
func DefaultConfig() *Config {
	return &Config{
		Keys: KeysConfig{
			// Empty means ~/.quill/keys, resolved at use so the home
			// directory lookup happens when a command actually needs it.
			Dir: "",
		},
		GenPass: GenPassConfig{
			Length:  constants.DefaultPasswordLength,
			Upper:   true,
			Lower:   true,
			Digits:  true,
			Symbols: true,
		},
		Sign: SignConfig{
			Timeout: 0,
			Workers: constants.DefaultSignWorkers,
		},
		CSV: CSVConfig{
			Delimiter: constants.DefaultCSVDelimiter,
		},
		Log: LogConfig{
			Level:       constants.DefaultLogLevel,
			FileEnabled: true,
		},
	}
}
