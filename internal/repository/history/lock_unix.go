//go:build !windows

package history

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockExclusive blocks until an exclusive advisory lock is held on f.
func lockExclusive(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

// unlock releases the advisory lock on f.
func unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
