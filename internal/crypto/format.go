package crypto

import (
	"strings"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/spf13/pflag"
)

// Format selects which signing scheme an operation uses. There is no
// default: every operation that needs a scheme requires an explicit format.
type Format string

// Supported signature formats.
const (
	// FormatBlake3 is the symmetric keyed-hash scheme.
	FormatBlake3 Format = constants.FormatNameBlake3

	// FormatEd25519 is the asymmetric signature scheme.
	FormatEd25519 Format = constants.FormatNameEd25519
)

// Formats returns the supported format names in display order.
func Formats() []string {
	return []string{constants.FormatNameBlake3, constants.FormatNameEd25519}
}

// ParseFormat converts a user-supplied name into a Format.
// Unknown names fail with ErrUnknownFormat.
func ParseFormat(name string) (Format, error) {
	switch name {
	case constants.FormatNameBlake3:
		return FormatBlake3, nil
	case constants.FormatNameEd25519:
		return FormatEd25519, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownFormat, "%q (expected one of: %s)", name, strings.Join(Formats(), ", "))
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Set parses and stores a format value from the command line.
func (f *Format) Set(value string) error {
	parsed, err := ParseFormat(value)
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}

// Type returns the flag type name shown in usage text.
func (f *Format) Type() string {
	return "format"
}

// Format is a pflag.Value so commands can register it directly with no default.
var _ pflag.Value = (*Format)(nil)
