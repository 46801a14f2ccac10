//go:build unix

package flock_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/quill/internal/flock"
)

// openLockFile creates a lock file in a fresh temp dir and returns it open.
func openLockFile(t *testing.T) *os.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.lock")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // test-owned path
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f
}

func TestExclusive_AcquiresAndReleases(t *testing.T) {
	t.Parallel()

	f := openLockFile(t)

	require.NoError(t, flock.Exclusive(f.Fd()))
	require.NoError(t, flock.Unlock(f.Fd()))
}

func TestExclusive_FailsWhenHeld(t *testing.T) {
	t.Parallel()

	f1 := openLockFile(t)
	require.NoError(t, flock.Exclusive(f1.Fd()))
	defer func() { _ = flock.Unlock(f1.Fd()) }()

	// A separate open of the same file carries its own lock state, so the
	// non-blocking acquire must fail while the first lock is held
	f2, err := os.OpenFile(f1.Name(), os.O_RDWR, 0o600) //nolint:gosec // test-owned path
	require.NoError(t, err)
	defer func() { _ = f2.Close() }()

	assert.Error(t, flock.Exclusive(f2.Fd()))
}

func TestExclusive_ReacquireAfterUnlock(t *testing.T) {
	t.Parallel()

	f := openLockFile(t)

	require.NoError(t, flock.Exclusive(f.Fd()))
	require.NoError(t, flock.Unlock(f.Fd()))

	require.NoError(t, flock.Exclusive(f.Fd()))
	require.NoError(t, flock.Unlock(f.Fd()))
}
