// Package input reads the bytes every quill operation works on. A source is
// named by a single identifier: "-" selects standard input, anything else is
// a file path. Content is read whole; there is no streaming.
package input

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/ctxutil"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/rs/zerolog"
)

// Stdin is the reader used when the identifier is "-". Tests replace it to
// inject input without touching os.Stdin.
var Stdin io.Reader = os.Stdin //nolint:gochecknoglobals // Test injection point

// ReadAll reads every byte from the named source and strips leading and
// trailing whitespace. The trim keeps shell-created files honest: signing a
// file produced by `echo hello1 > f` covers the six payload bytes, not the
// trailing newline the shell added.
func ReadAll(ctx context.Context, identifier string) ([]byte, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx)

	var (
		data []byte
		err  error
	)

	if identifier == constants.Stdin {
		data, err = io.ReadAll(Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading standard input")
		}
	} else {
		data, err = os.ReadFile(identifier) //nolint:gosec // G304: the path is user-supplied on purpose
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrapf(errors.ErrInputNotFound, "%s", identifier)
			}
			return nil, errors.Wrapf(err, "reading input %s", identifier)
		}
	}

	trimmed := bytes.TrimSpace(data)
	log.Debug().
		Str("source", identifier).
		Int("bytes", len(trimmed)).
		Msg("input read")

	return trimmed, nil
}
