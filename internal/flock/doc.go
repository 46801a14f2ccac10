// Package flock provides cross-platform file locking utilities.
//
// Key generation holds an exclusive lock on the key directory so two keygen
// runs cannot interleave their existence checks and writes. Locks are
// non-blocking: a held lock fails immediately instead of waiting.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - file is in use
//	}
//	defer flock.Unlock(file.Fd())
package flock
