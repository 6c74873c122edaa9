// pattern: Imperative Shell
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"yukari/internal/ratio"
)

const (
	fileName   = "session.yaml"
	retryDelay = 10 * time.Millisecond
	lockWait   = 2 * time.Second
)

// State is what a browsing session leaves behind for the next one.
type State struct {
	Dir        string           `yaml:"dir"`
	Panes      int              `yaml:"panes,omitempty"`
	Ratios     []ratio.Rational `yaml:"ratios,omitempty"`
	ShowHidden bool             `yaml:"show_hidden,omitempty"`
	SavedAt    time.Time        `yaml:"saved_at"`
}

// Store reads and writes the session file. Access is serialized through a
// sidecar lock file so a CLI command never observes a half-written session.
type Store struct {
	path string
	lock *flock.Flock
}

// Dir returns stateDir if set, else $XDG_STATE_HOME/yukari or
// ~/.local/state/yukari.
func Dir(stateDir string) string {
	if stateDir != "" {
		return stateDir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "yukari")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "state", "yukari")
	}
	return filepath.Join(home, ".local", "state", "yukari")
}

func NewStore(dir string) *Store {
	path := filepath.Join(dir, fileName)
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the session file location.
func (s *Store) Path() string { return s.path }

// Load returns the saved session. ok is false when nothing was saved.
func (s *Store) Load(ctx context.Context) (st State, ok bool, err error) {
	if _, err := os.Stat(filepath.Dir(s.path)); os.IsNotExist(err) {
		return State{}, false, nil
	}
	if err := s.acquire(ctx, true); err != nil {
		return State{}, false, err
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, err
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{}, false, fmt.Errorf("%s: %w", s.path, err)
	}
	return st, true, nil
}

// Save writes st atomically, stamping SavedAt when it is unset.
func (s *Store) Save(ctx context.Context, st State) error {
	if st.SavedAt.IsZero() {
		st.SavedAt = time.Now().UTC().Truncate(time.Second)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := s.acquire(ctx, false); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the saved session. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); os.IsNotExist(err) {
		return nil
	}
	if err := s.acquire(ctx, false); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) acquire(ctx context.Context, shared bool) error {
	ctx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = s.lock.TryRLockContext(ctx, retryDelay)
	} else {
		locked, err = s.lock.TryLockContext(ctx, retryDelay)
	}
	if err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to lock session: %s is busy", s.path)
	}
	return nil
}
