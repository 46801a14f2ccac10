// Package crypto provides the signing schemes quill supports behind a single
// sign/verify contract. Scheme implementations live in subpackages; this
// package holds the shared interfaces, the format tag that selects a scheme
// at runtime, key file loading, and the text signing facade the CLI calls.
package crypto

import "context"

// Signer produces a raw signature over a message.
// Implementations must be deterministic: signing the same message twice
// with the same key produces the same signature.
type Signer interface {
	// Sign signs the given message and returns the raw signature bytes.
	Sign(ctx context.Context, message []byte) ([]byte, error)
}

// Verifier checks a raw signature over a message.
//
// The bool/error split is deliberate: (false, nil) means verification ran
// and the signature does not match; a non-nil error means verification
// could not run at all (wrong-length signature, bad key material). Callers
// must never treat a mismatch as an error.
type Verifier interface {
	// Verify reports whether signature is valid for the given message.
	Verify(ctx context.Context, message, signature []byte) (bool, error)
}
