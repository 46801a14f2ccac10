package crypto

import (
	"context"
	"encoding/base64"

	"github.com/mrz1836/quill/internal/crypto/keyed"
	"github.com/mrz1836/quill/internal/crypto/native"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/input"
	"github.com/rs/zerolog"
)

// signatureEncoding is the alphabet signatures travel in as text: URL-safe
// base64 without padding, so a signature pastes cleanly into a query string
// or a shell argument.
var signatureEncoding = base64.RawURLEncoding //nolint:gochecknoglobals // Fixed wire alphabet

// SignText reads the source, signs it with the key at keyPath under the
// given format, and returns the signature as URL-safe unpadded base64.
func SignText(ctx context.Context, source, keyPath string, format Format) (string, error) {
	data, err := input.ReadAll(ctx, source)
	if err != nil {
		return "", err
	}

	signer, err := LoadSigner(keyPath, format)
	if err != nil {
		return "", err
	}

	sig, err := signer.Sign(ctx, data)
	if err != nil {
		return "", errors.Wrap(err, "signing input")
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", format.String()).
		Str("source", source).
		Int("message_bytes", len(data)).
		Int("signature_bytes", len(sig)).
		Msg("signed input")

	return signatureEncoding.EncodeToString(sig), nil
}

// VerifyText reads the source and checks sigText against it with the key at
// keyPath under the given format. The signature text is decoded before any
// key material is read, so malformed text fails with ErrEncoding up front.
// A verdict of (false, nil) means the signature is well formed but does not
// match; errors mean verification could not run.
func VerifyText(ctx context.Context, source, keyPath, sigText string, format Format) (bool, error) {
	sig, err := signatureEncoding.DecodeString(sigText)
	if err != nil {
		return false, errors.Wrapf(errors.ErrEncoding, "%v", err)
	}

	data, err := input.ReadAll(ctx, source)
	if err != nil {
		return false, err
	}

	verifier, err := LoadVerifier(keyPath, format)
	if err != nil {
		return false, err
	}

	ok, err := verifier.Verify(ctx, data, sig)
	if err != nil {
		return false, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", format.String()).
		Str("source", source).
		Bool("valid", ok).
		Msg("verified input")

	return ok, nil
}

// GenerateKey produces fresh key material for the given format. The blob
// order is fixed per scheme: blake3 yields a single symmetric key, ed25519
// yields the private seed followed by the public key.
func GenerateKey(ctx context.Context, format Format) ([][]byte, error) {
	var (
		blobs [][]byte
		err   error
	)

	switch format {
	case FormatBlake3:
		blobs, err = keyed.GenerateKey()
	case FormatEd25519:
		blobs, err = native.GenerateKey()
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "%q", format)
	}

	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", format.String()).
		Int("blobs", len(blobs)).
		Msg("generated key material")

	return blobs, nil
}
