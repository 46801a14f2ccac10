// Package native implements the asymmetric signing scheme using Go's
// native Ed25519 library.
//
// Unlike the symmetric keyed scheme, the two halves of the contract hold
// different key material: a Signer wraps the 32-byte private seed and a
// Verifier wraps the 32-byte public key. Signatures are deterministic
// 64-byte Ed25519 signatures.
package native

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/errors"
)

// Signer signs messages with an Ed25519 private key expanded from a seed.
type Signer struct {
	priv ed25519.PrivateKey
}

// NewSigner builds a Signer from a 32-byte private seed. Any other
// length fails with ErrKeyFormat.
func NewSigner(seed []byte) (*Signer, error) {
	if len(seed) != constants.Ed25519SeedSize {
		return nil, errors.Wrapf(errors.ErrKeyFormat,
			"ed25519 seed must be exactly %d bytes, got %d", constants.Ed25519SeedSize, len(seed))
	}

	return &Signer{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign returns the 64-byte Ed25519 signature over the message.
func (s *Signer) Sign(_ context.Context, message []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, message), nil
}

// Verifier checks Ed25519 signatures with a public key.
type Verifier struct {
	pub ed25519.PublicKey
}

// NewVerifier builds a Verifier from a 32-byte public key. Any other
// length fails with ErrKeyFormat.
func NewVerifier(pub []byte) (*Verifier, error) {
	if len(pub) != constants.Ed25519PublicKeySize {
		return nil, errors.Wrapf(errors.ErrKeyFormat,
			"ed25519 public key must be exactly %d bytes, got %d", constants.Ed25519PublicKeySize, len(pub))
	}

	v := &Verifier{pub: make(ed25519.PublicKey, constants.Ed25519PublicKeySize)}
	copy(v.pub, pub)

	return v, nil
}

// Verify reports whether signature is a valid Ed25519 signature over the
// message. A signature that is not exactly 64 bytes cannot be checked and
// fails with ErrSignatureFormat; a well-formed signature that does not
// match reports (false, nil).
func (v *Verifier) Verify(_ context.Context, message, signature []byte) (bool, error) {
	if len(signature) != constants.Ed25519SignatureSize {
		return false, errors.Wrapf(errors.ErrSignatureFormat,
			"ed25519 signature must be exactly %d bytes, got %d", constants.Ed25519SignatureSize, len(signature))
	}

	return ed25519.Verify(v.pub, message, signature), nil
}

// GenerateKey produces fresh key material for the scheme: the private
// seed followed by the public key, both 32 bytes, in that order.
func GenerateKey() ([][]byte, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generating ed25519 key pair")
	}

	return [][]byte{priv.Seed(), pub}, nil
}
