// Package constants provides centralized constant values used throughout quill.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Key and signature sizes in bytes. Key files store these raw byte
// sequences with no header or framing, so the sizes double as the file
// format contract.
const (
	// Blake3KeySize is the exact key length the keyed-hash scheme uses.
	// Longer key files are accepted and truncated to this prefix.
	Blake3KeySize = 32

	// Blake3SignatureSize is the keyed-hash digest length.
	Blake3SignatureSize = 32

	// Ed25519SeedSize is the private seed length for the asymmetric scheme.
	Ed25519SeedSize = 32

	// Ed25519PublicKeySize is the public key length for the asymmetric scheme.
	Ed25519PublicKeySize = 32

	// Ed25519SignatureSize is the signature length for the asymmetric scheme.
	Ed25519SignatureSize = 64
)

// Key file names written by keygen. The names are positional: the scheme
// is identified by the file, not by any content marker.
const (
	// Blake3KeyFileName holds the shared keyed-hash key.
	Blake3KeyFileName = "blake3.key"

	// Ed25519SecretFileName holds the signing seed.
	Ed25519SecretFileName = "ed25519.sk"

	// Ed25519PublicFileName holds the verification key.
	Ed25519PublicFileName = "ed25519.pk"
)

// Scheme format tags accepted by the --format flag.
const (
	// FormatNameBlake3 selects the symmetric keyed-hash scheme.
	FormatNameBlake3 = "blake3"

	// FormatNameEd25519 selects the asymmetric signature scheme.
	FormatNameEd25519 = "ed25519"
)

// Directory names and paths used by quill for organizing data.
const (
	// QuillHome is the hidden directory name where quill stores all its data.
	// This directory is created in the user's home directory.
	QuillHome = ".quill"

	// KeysDir is the directory name where generated key files are stored.
	KeysDir = "keys"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Environment variable names.
const (
	// EnvPrefix is the prefix for all quill environment variables.
	EnvPrefix = "QUILL"

	// EnvHome overrides the quill home directory location.
	EnvHome = "QUILL_HOME"
)

// Stdin is the source identifier that selects standard input instead of
// a file path.
const Stdin = "-"

// KeyFilePerm is the permission mode for written key files. Key material
// is secret even for the public half's sibling, so everything keygen
// writes is owner-only.
const KeyFilePerm = 0o600

// Password generator defaults.
const (
	// DefaultPasswordLength is the genpass default when no length is given.
	DefaultPasswordLength = 16

	// GeneratedKeyLength is the password length used when minting keyed-hash
	// key material.
	GeneratedKeyLength = 32
)

// DefaultCSVDelimiter separates fields when no delimiter is configured.
const DefaultCSVDelimiter = ","

// DefaultSignWorkers caps concurrent signing goroutines when a run has
// multiple inputs.
const DefaultSignWorkers = 4

// DefaultLogLevel is the log level used when none is configured.
const DefaultLogLevel = "info"
