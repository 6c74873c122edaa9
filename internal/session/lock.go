// pattern: Imperative Shell
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

const (
	lockFileName = "yukari.lock"
	pidFileName  = "yukari.pid"
)

// ErrRunning is returned by Lock when another instance holds the lock.
var ErrRunning = errors.New("another yukari instance is running")

// Lock acquires the exclusive instance lock in dir and records the current
// pid next to it. The instance holding the lock owns the session file.
// Callers must defer Cleanup.
func Lock(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrRunning
	}
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(filepath.Join(dir, pidFileName), []byte(pid), 0o600); err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("failed to write pid file: %w", err)
	}
	return fl, nil
}

// Running reports the pid of the instance holding the lock in dir.
// ok is false when no instance is running.
func Running(dir string) (pid int, ok bool, err error) {
	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to check lock: %w", err)
	}
	if locked {
		_ = fl.Unlock()
		return 0, false, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, pidFileName))
	if err != nil {
		return 0, true, fmt.Errorf("instance detected but pid file missing: %w", err)
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, true, fmt.Errorf("malformed pid file: %w", err)
	}
	return pid, true, nil
}

// Cleanup removes the pid file and releases the lock.
func Cleanup(dir string, fl *flock.Flock) {
	_ = os.Remove(filepath.Join(dir, pidFileName))
	if fl != nil {
		_ = fl.Unlock()
	}
}
