package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Keys & Signatures
	// ===================
	{
		err: ErrKeyNotFound,
		info: ErrorInfo{
			Message: "The key file was not found.",
			Action:  "Check the path, or generate a key with 'quill text keygen'.",
		},
	},
	{
		err: ErrKeyFormat,
		info: ErrorInfo{
			Message: "The key file does not contain valid key material for this scheme.",
			Action:  "blake3 keys need at least 32 bytes; ed25519 keys exactly 32. Regenerate with 'quill text keygen'.",
		},
	},
	{
		err: ErrEncoding,
		info: ErrorInfo{
			Message: "The signature text is not valid base64.",
			Action:  "Pass the signature exactly as printed by 'quill text sign' (URL-safe, no padding).",
		},
	},
	{
		err: ErrSignatureFormat,
		info: ErrorInfo{
			Message: "The signature has the wrong length for this scheme.",
			Action:  "Check that the --format matches the scheme the signature was created with.",
		},
	},
	{
		err: ErrUnknownFormat,
		info: ErrorInfo{
			Message: "Unknown signature format.",
			Action:  "Use --format blake3 or --format ed25519.",
		},
	},
	{
		err: ErrVerificationFailed,
		info: ErrorInfo{
			Message: "The signature does not match the input.",
			Action:  "The input changed, the key differs, or the signature was tampered with.",
		},
	},
	{
		err: ErrKeyExists,
		info: ErrorInfo{
			Message: "A key file already exists at the target location.",
			Action:  "Use --force to overwrite, or choose another --out-dir.",
		},
	},

	// ===================
	// Input
	// ===================
	{
		err: ErrInputNotFound,
		info: ErrorInfo{
			Message: "The input file was not found.",
			Action:  "Check the path, or use '-' to read from standard input.",
		},
	},
	{
		err: ErrEmptySignature,
		info: ErrorInfo{
			Message: "No signature was provided to verify.",
			Action:  "Pass the signature text with --signature.",
		},
	},
	{
		err: ErrEmptyCSV,
		info: ErrorInfo{
			Message: "The CSV input has no header row.",
			Action:  "Provide a CSV file with at least a header row.",
		},
	},
	{
		err: ErrUnknownEncoding,
		info: ErrorInfo{
			Message: "Unknown base64 alphabet.",
			Action:  "Use --format standard or --format urlsafe.",
		},
	},

	// ===================
	// Password Generation
	// ===================
	{
		err: ErrPasswordLength,
		info: ErrorInfo{
			Message: "The requested password length is too short.",
			Action:  "Request at least one character per enabled class.",
		},
	},
	{
		err: ErrNoCharClasses,
		info: ErrorInfo{
			Message: "Every character class is disabled.",
			Action:  "Enable at least one of --upper, --lower, --digits, --symbols.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNotFound,
		info: ErrorInfo{
			Message: "Configuration file not found.",
			Action:  "Create ~/.quill/config.yaml or a project .quill/config.yaml.",
		},
	},
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure the config file exists and is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "Invalid configuration.",
			Action:  "Run 'quill config show' and fix the reported section.",
		},
	},

	// ===================
	// User Interaction
	// ===================
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation was canceled.",
			Action:  "",
		},
	},
	{
		err: ErrUserInputRequired,
		info: ErrorInfo{
			Message: "This operation requires user input.",
			Action:  "Run in an interactive terminal or provide required flags.",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "This operation requires confirmation in non-interactive mode.",
			Action:  "Use --force flag to skip confirmation.",
		},
	},

	// ===================
	// Misc
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "An invalid output format was specified.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrUnsupportedOutputFormat,
		info: ErrorInfo{
			Message: "The conversion output format is not supported.",
			Action:  "Use --format json or --format yaml.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// This function maps sentinel errors to helpful, actionable messages
// that are suitable for display to end users.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
