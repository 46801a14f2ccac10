// Package keyed implements the symmetric signing scheme backed by a
// BLAKE3 keyed hash.
//
// One 32-byte key drives both halves of the contract: the signature is
// the keyed digest of the message, and verification recomputes the digest
// and compares in constant time. Because both sides hold the same secret,
// a single Blake3 value serves as signer and verifier.
package keyed

import (
	"context"
	"crypto/subtle"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/genpass"
	"lukechampine.com/blake3"
)

// Blake3 signs and verifies messages with a keyed BLAKE3 hash.
type Blake3 struct {
	key [constants.Blake3KeySize]byte
}

// New builds a Blake3 from raw key bytes. Keys shorter than
// constants.Blake3KeySize fail with ErrKeyFormat; longer keys are
// truncated to the first 32 bytes, so any key of at least 32 bytes
// that shares a prefix signs identically.
func New(key []byte) (*Blake3, error) {
	if len(key) < constants.Blake3KeySize {
		return nil, errors.Wrapf(errors.ErrKeyFormat,
			"blake3 key must be at least %d bytes, got %d", constants.Blake3KeySize, len(key))
	}

	b := &Blake3{}
	copy(b.key[:], key[:constants.Blake3KeySize])

	return b, nil
}

// Sign returns the keyed BLAKE3 digest of the message.
func (b *Blake3) Sign(_ context.Context, message []byte) ([]byte, error) {
	h := blake3.New(constants.Blake3SignatureSize, b.key[:])
	_, _ = h.Write(message) // hash.Hash writes never fail

	return h.Sum(nil), nil
}

// Verify recomputes the digest and compares it to signature in constant
// time. Any mismatch in length or content reports (false, nil); the
// symmetric scheme has no malformed-signature failure mode.
func (b *Blake3) Verify(ctx context.Context, message, signature []byte) (bool, error) {
	expected, err := b.Sign(ctx, message)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(expected, signature) == 1, nil
}

// GenerateKey produces fresh key material for the scheme: a single
// 32-byte key drawn from the full password alphabet, so the blob is
// printable and exactly fills a blake3 key.
func GenerateKey() ([][]byte, error) {
	password, err := genpass.Generate(genpass.KeyOptions())
	if err != nil {
		return nil, errors.Wrap(err, "generating blake3 key")
	}

	return [][]byte{[]byte(password)}, nil
}
