// Package genpass generates random passwords from configurable character
// classes. It backs the genpass command and supplies fresh key material for
// the keyed-hash scheme, so every draw comes from crypto/rand.
package genpass

import (
	"crypto/rand"
	"math/big"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/errors"
)

// Character classes exclude look-alikes (I, O, l, 0) so generated
// passwords survive being read aloud or retyped.
const (
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	digitChars  = "123456789"
	symbolChars = "!@#$%^&*_"
)

// Options controls password generation. At least one class must be enabled.
type Options struct {
	// Length is the total password length.
	Length int

	// Upper includes uppercase letters.
	Upper bool

	// Lower includes lowercase letters.
	Lower bool

	// Digits includes digits.
	Digits bool

	// Symbols includes punctuation symbols.
	Symbols bool
}

// DefaultOptions returns the options used when nothing is configured:
// every class enabled at the default length.
func DefaultOptions() Options {
	return Options{
		Length:  constants.DefaultPasswordLength,
		Upper:   true,
		Lower:   true,
		Digits:  true,
		Symbols: true,
	}
}

// KeyOptions returns the options used to mint keyed-hash key material:
// maximum character diversity at the exact key length.
func KeyOptions() Options {
	return Options{
		Length:  constants.GeneratedKeyLength,
		Upper:   true,
		Lower:   true,
		Digits:  true,
		Symbols: true,
	}
}

// Generate produces a random password honoring opts. Every enabled class
// contributes at least one character; the rest are drawn from the union of
// enabled classes and the result is shuffled so the guaranteed characters
// do not cluster at the front.
func Generate(opts Options) (string, error) {
	var classes []string
	if opts.Upper {
		classes = append(classes, upperChars)
	}
	if opts.Lower {
		classes = append(classes, lowerChars)
	}
	if opts.Digits {
		classes = append(classes, digitChars)
	}
	if opts.Symbols {
		classes = append(classes, symbolChars)
	}

	if len(classes) == 0 {
		return "", errors.ErrNoCharClasses
	}
	if opts.Length < len(classes) {
		return "", errors.Wrapf(errors.ErrPasswordLength,
			"length %d cannot cover %d enabled classes", opts.Length, len(classes))
	}

	pool := ""
	for _, class := range classes {
		pool += class
	}

	password := make([]byte, 0, opts.Length)
	for _, class := range classes {
		c, err := randomByte(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}
	for len(password) < opts.Length {
		c, err := randomByte(pool)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}

	return string(password), nil
}

// randomByte picks one byte from charset uniformly.
func randomByte(charset string) (byte, error) {
	idx, err := randomIndex(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[idx], nil
}

// randomIndex returns a uniform index in [0, n) from crypto/rand.
func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "reading random bytes")
	}
	return int(v.Int64()), nil
}

// shuffle performs a Fisher-Yates shuffle in place.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
