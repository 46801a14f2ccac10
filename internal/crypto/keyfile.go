package crypto

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/mrz1836/quill/internal/crypto/keyed"
	"github.com/mrz1836/quill/internal/crypto/native"
	"github.com/mrz1836/quill/internal/errors"
)

// LoadSigner reads the key file at path and builds the signing half of the
// given format. Key files hold raw key bytes; the file content is the key,
// with no trimming, derivation, or decoding applied.
func LoadSigner(path string, format Format) (Signer, error) {
	key, err := readKeyFile(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatBlake3:
		return keyed.New(key)
	case FormatEd25519:
		return native.NewSigner(key)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "%q", format)
	}
}

// LoadVerifier reads the key file at path and builds the verifying half of
// the given format. For the symmetric blake3 scheme this is the same key
// file as the signer; for ed25519 it is the public key file.
func LoadVerifier(path string, format Format) (Verifier, error) {
	key, err := readKeyFile(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatBlake3:
		return keyed.New(key)
	case FormatEd25519:
		return native.NewVerifier(key)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "%q", format)
	}
}

// readKeyFile loads raw key bytes from disk, mapping a missing file to
// ErrKeyNotFound so callers can point the user at keygen.
func readKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // key path is user-supplied on purpose
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrKeyNotFound, "%s", path)
		}

		return nil, errors.Wrapf(err, "reading key file %s", path)
	}

	return data, nil
}
