package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileLock is an advisory, exclusive, cross-process lock on a lock file.
type FileLock struct {
	flk *flock.Flock
}

// NewFileLock creates a lock backed by the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{flk: flock.New(path)}
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.flk.Path()
}

// Lock blocks until the lock is held.
func (l *FileLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.flk.Path()), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	if err := l.flk.Lock(); err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.flk.Path(), err)
	}
	return nil
}

// Unlock releases the lock.
func (l *FileLock) Unlock() error {
	if err := l.flk.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.flk.Path(), err)
	}
	return nil
}
