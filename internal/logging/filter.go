// Package logging provides logging utilities including sensitive data filtering.
// This package contains hooks and utilities for zerolog that help ensure
// key material and generated passwords are never written to log files.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns contains compiled regular expressions for detecting sensitive values.
// These patterns match the shapes key material takes in quill: raw key files
// rendered as hex or base64, seeds, and generated passwords.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Hex-encoded 32/64-byte key material labelled as such
	regexp.MustCompile(`(?i)(key|seed)\s*[:=]\s*["']?[0-9a-f]{64,128}["']?`),

	// Base64 blobs labelled as key or seed material
	regexp.MustCompile(`(?i)(key|seed)\s*[:=]\s*["']?[a-zA-Z0-9+/_=-]{40,}["']?`),

	// Generated passwords echoed into a message
	regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`),

	// Generic secret patterns (secret, credential, passphrase with values)
	regexp.MustCompile(`(?i)(secret|credential|passphrase)\s*[:=]\s*["']?[^\s"']{8,}["']?`),

	// PEM-style private key blocks, in case a foreign key file is logged
	regexp.MustCompile(`(?i)-----BEGIN[A-Z\s]+PRIVATE KEY-----`),
}

// sensitiveFieldNames contains field names that should always have their values
// redacted. Matching is case-insensitive, on the whole name or on a
// separator-delimited word within it, so key_path stays loggable while
// key_bytes and my_seed_value do not.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"key_bytes",
	"key_material",
	"secret",
	"secret_key",
	"seed",
	"private_key",
	"privatekey",
	"password",
	"passwd",
	"passphrase",
	"credential",
	"credentials",
}

// fieldSeparators are the word separators recognized in field names.
var fieldSeparators = []string{"_", "-"} //nolint:gochecknoglobals // Package-level for reuse

// sensitiveFieldSet provides O(1) lookup for exact field name matches.
//
//nolint:gochecknoglobals // Pre-built set for lookup performance
var sensitiveFieldSet = buildSensitiveFieldSet()

func buildSensitiveFieldSet() map[string]struct{} {
	s := make(map[string]struct{}, len(sensitiveFieldNames))
	for _, name := range sensitiveFieldNames {
		s[name] = struct{}{}
	}
	return s
}

// SensitiveDataHook is a zerolog hook that filters sensitive data from log entries.
// It examines string values in log events and redacts any content that matches
// known sensitive patterns or field names.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook for filtering sensitive data.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements the zerolog.Hook interface.
// It examines the log event and redacts sensitive data.
// Zerolog hooks have limited access to event data. This hook primarily
// works by filtering the message string. For field-level filtering,
// use FilterSensitiveValue when constructing log entries.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	// The zerolog.Event doesn't expose a way to modify fields directly,
	// but we can add context that indicates filtering was applied.
	// The main filtering happens via FilterSensitiveValue used at log call sites.

	// Filter the message if it contains sensitive data
	if ContainsSensitiveData(msg) {
		// Unfortunately, zerolog doesn't allow modifying the message in a hook.
		// The message filtering must be done at the call site.
		// This hook serves as a fallback to at least flag potentially sensitive logs.
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData checks if a string contains any sensitive data patterns.
// Returns true if any sensitive pattern is found.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue filters sensitive data from a string value.
// It replaces any matches of sensitive patterns with [REDACTED].
// This function should be used when logging potentially sensitive values.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName checks if a field name indicates sensitive data.
// Returns true if the field name matches any known sensitive field name patterns.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)

	// Fast path: exact match
	if _, ok := sensitiveFieldSet[lowerName]; ok {
		return true
	}

	for _, sensitive := range sensitiveFieldNames {
		if matchesSensitivePattern(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// matchesSensitivePattern reports whether fieldName matches the sensitive word
// exactly or as a separator-delimited component (prefix, suffix, or infix).
// Partial-word matches like "secretariat" never trigger.
func matchesSensitivePattern(fieldName, sensitive string) bool {
	if fieldName == "" || sensitive == "" {
		return false
	}
	if fieldName == sensitive {
		return true
	}
	return containsWordBoundary(fieldName, sensitive, fieldSeparators)
}

// containsWordBoundary reports whether word appears in name delimited by one of
// the given separators on at least one side. An exact match is not a boundary
// match; callers handle that case themselves.
func containsWordBoundary(name, word string, seps []string) bool {
	if name == "" || word == "" || name == word {
		return false
	}
	for _, sep := range seps {
		if strings.HasPrefix(name, word+sep) {
			return true
		}
		if strings.HasSuffix(name, sep+word) {
			return true
		}
		for _, sep2 := range seps {
			if strings.Contains(name, sep+word+sep2) {
				return true
			}
		}
	}
	return false
}

// RedactIfSensitive returns [REDACTED] if the field name indicates sensitive data,
// otherwise returns the original value.
// Use this when logging field values that might be sensitive.
func RedactIfSensitive(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// SafeValue returns a filtered value for a field, redacting sensitive data.
// This is a convenience wrapper for adding filtered string fields to log events.
//
// Usage:
//
//	log.Info().Str("key_path", logging.SafeValue("key_path", path)).Msg("key loaded")
func SafeValue(fieldName, value string) string {
	return RedactIfSensitive(fieldName, value)
}

// FilteringWriter wraps an io.Writer and filters sensitive data from output.
// This is used to wrap log file writers to ensure key material is never
// written to disk, even if it appears in log messages or field values.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
// All data written through this writer will have sensitive patterns redacted.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering sensitive data before writing.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	// Filter the data before writing
	filtered := FilterSensitiveValue(string(p))
	// Write the filtered data, but return original length to satisfy io.Writer contract
	_, err = fw.w.Write([]byte(filtered))
	if err != nil {
		return 0, err
	}
	// Return original length so callers don't think there was a short write
	return len(p), nil
}
