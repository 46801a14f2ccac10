// Package errors provides centralized error handling for quill.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrKeyNotFound indicates the key file does not exist or could not be read.
	ErrKeyNotFound = errors.New("key file not found")

	// ErrInputNotFound indicates the input source path does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrKeyFormat indicates key material of the wrong length for the
	// selected scheme. The keyed-hash scheme requires at least 32 bytes;
	// the asymmetric scheme requires exactly 32.
	ErrKeyFormat = errors.New("invalid key format")

	// ErrEncoding indicates signature text that is not valid base64.
	ErrEncoding = errors.New("invalid base64 encoding")

	// ErrSignatureFormat indicates signature bytes of the wrong length for
	// the scheme. Distinct from a mismatch: a well-formed signature that
	// does not verify is a false result, not an error.
	ErrSignatureFormat = errors.New("invalid signature format")

	// ErrUnknownFormat indicates an unrecognized scheme format tag.
	// There is no default scheme; every operation names one explicitly.
	ErrUnknownFormat = errors.New("unknown signature format")

	// ErrUnknownEncoding indicates an unrecognized base64 alphabet name.
	ErrUnknownEncoding = errors.New("unknown base64 alphabet")

	// ErrKeyExists indicates keygen would overwrite an existing key file.
	ErrKeyExists = errors.New("key file already exists")

	// ErrPasswordLength indicates a requested password length too small to
	// include one character from every enabled class.
	ErrPasswordLength = errors.New("password length too short")

	// ErrNoCharClasses indicates password generation with every character
	// class disabled.
	ErrNoCharClasses = errors.New("no character classes enabled")

	// ErrEmptyCSV indicates a CSV input with no header row.
	ErrEmptyCSV = errors.New("csv input is empty")

	// ErrEmptySignature indicates a verify call with no signature text.
	ErrEmptySignature = errors.New("signature cannot be empty")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrUnsupportedOutputFormat indicates that an unsupported conversion
	// output format was specified.
	ErrUnsupportedOutputFormat = errors.New("unsupported output format")

	// ErrNonInteractiveMode indicates that an operation requiring confirmation
	// was attempted in non-interactive mode without the force flag.
	ErrNonInteractiveMode = errors.New("use --force in non-interactive mode")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")

	// ErrUserInputRequired indicates user input is required but not provided.
	// Commands should exit with code 2 when this error is returned.
	ErrUserInputRequired = errors.New("user input required")

	// ErrVerificationFailed indicates a signature that did not verify.
	// The library layer reports this as a false result; the CLI wraps it in
	// this sentinel so the process exits non-zero without a usage trace.
	ErrVerificationFailed = errors.New("signature verification failed")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
