package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeConstants(t *testing.T) {
	t.Run("blake3 key and digest are 32 bytes", func(t *testing.T) {
		assert.Equal(t, 32, Blake3KeySize)
		assert.Equal(t, 32, Blake3SignatureSize)
	})

	t.Run("ed25519 sizes match the curve", func(t *testing.T) {
		assert.Equal(t, 32, Ed25519SeedSize)
		assert.Equal(t, 32, Ed25519PublicKeySize)
		assert.Equal(t, 64, Ed25519SignatureSize)
	})

	t.Run("generated key length fills a blake3 key exactly", func(t *testing.T) {
		assert.Equal(t, Blake3KeySize, GeneratedKeyLength, "keygen output must be usable as a keyed-hash key")
	})
}

func TestKeyFileNames(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"Blake3KeyFileName", Blake3KeyFileName, "blake3.key"},
		{"Ed25519SecretFileName", Ed25519SecretFileName, "ed25519.sk"},
		{"Ed25519PublicFileName", Ed25519PublicFileName, "ed25519.pk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
		})
	}
}

func TestFormatNames(t *testing.T) {
	t.Run("format tags are lowercase scheme names", func(t *testing.T) {
		assert.Equal(t, "blake3", FormatNameBlake3)
		assert.Equal(t, "ed25519", FormatNameEd25519)
	})
}

func TestPathConstants(t *testing.T) {
	t.Run("quill home is a hidden directory", func(t *testing.T) {
		assert.Equal(t, ".quill", QuillHome)
	})

	t.Run("stdin identifier is a single dash", func(t *testing.T) {
		assert.Equal(t, "-", Stdin)
	})

	t.Run("key files are owner-only", func(t *testing.T) {
		assert.Equal(t, 0o600, KeyFilePerm)
	})
}
