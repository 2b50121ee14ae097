// Package filelock provides cross-process file locks and atomic writes.
// The store serializes database writes through it and the load command
// uses it to export results without readers ever seeing a partial file.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when LockWithTimeout gives up waiting
var ErrLockTimeout = errors.New("timed out waiting for lock")

// DefaultRetryDelay is the polling interval used while waiting for a lock
const DefaultRetryDelay = 20 * time.Millisecond

// DefaultLockTimeout bounds how long LockAndWrite waits for another writer
const DefaultLockTimeout = 10 * time.Second

// LockMetrics describes the most recent timed acquisition
type LockMetrics struct {
	Attempts int
	Waited   time.Duration
	TimedOut bool
}

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock   *flock.Flock
	path    string
	metrics LockMetrics
}

// NewFileLock creates a new file lock for the given path.
// The lock file is created on first acquisition.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// TryLock attempts to acquire the lock without blocking.
// Returns false if another holder has it.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// LockContext polls for the lock until it is acquired or ctx is done.
func (fl *FileLock) LockContext(ctx context.Context) error {
	start := time.Now()
	fl.metrics = LockMetrics{}

	for {
		fl.metrics.Attempts++
		acquired, err := fl.flock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
		}
		if acquired {
			fl.metrics.Waited = time.Since(start)
			return nil
		}

		select {
		case <-ctx.Done():
			fl.metrics.Waited = time.Since(start)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				fl.metrics.TimedOut = true
				return fmt.Errorf("%w: %s", ErrLockTimeout, fl.path)
			}
			return ctx.Err()
		case <-time.After(DefaultRetryDelay):
		}
	}
}

// LockWithTimeout is LockContext bounded by timeout.
// Returns an error wrapping ErrLockTimeout when the lock stays busy.
func (fl *FileLock) LockWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fl.LockContext(ctx)
}

// LastMetrics reports the outcome of the latest LockContext or LockWithTimeout call
func (fl *FileLock) LastMetrics() LockMetrics {
	return fl.metrics
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// WithLock runs fn while holding the lock at lockPath.
// Acquisition waits until ctx is done.
func WithLock(ctx context.Context, lockPath string, fn func() error) error {
	lock := NewFileLock(lockPath)
	if err := lock.LockContext(ctx); err != nil {
		return err
	}
	defer lock.Unlock()

	return fn()
}

// AtomicWrite writes data through a temp file in the target directory and
// renames it into place, so readers see either the old or the new content.
// Missing parent directories are created.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}

// LockAndWrite is LockAndWriteTimeout with DefaultLockTimeout.
func LockAndWrite(path string, data []byte) error {
	return LockAndWriteTimeout(path, data, DefaultLockTimeout)
}

// LockAndWriteTimeout holds path+".lock" while atomically writing path.
// It waits at most timeout for another holder and then fails with an error
// wrapping ErrLockTimeout. Once acquired, the lock file is removed afterwards,
// on success and failure.
func LockAndWriteTimeout(path string, data []byte, timeout time.Duration) error {
	lockPath := path + ".lock"
	lock := NewFileLock(lockPath)

	if err := lock.LockWithTimeout(timeout); err != nil {
		if errors.Is(err, ErrLockTimeout) {
			m := lock.LastMetrics()
			return fmt.Errorf("%w (%d attempts over %s)", err, m.Attempts, m.Waited.Round(time.Millisecond))
		}
		return err
	}
	defer func() {
		lock.Unlock()
		os.Remove(lockPath)
	}()

	return AtomicWrite(path, data)
}
