// pattern: Imperative Shell

package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"yukari/internal/logging"
)

// ErrNotDir is returned by Enter for entries that are not directories.
var ErrNotDir = errors.New("not a directory")

// State is the browser position: the current directory, its parent, and the
// listings of both. Parent is empty at the filesystem root.
type State struct {
	Parent         string
	Current        string
	ParentContent  []Entry
	CurrentContent []Entry
	ShowHidden     bool

	log *logging.ScopedLogger
}

// Cwd starts in the working directory, falling back to the home directory
// and then to "/".
func Cwd(log *logging.ScopedLogger) State {
	dir, err := os.Getwd()
	if err != nil {
		if dir, err = os.UserHomeDir(); err != nil {
			dir = string(filepath.Separator)
		}
	}
	return At(dir, log)
}

// At starts in dir.
func At(dir string, log *logging.ScopedLogger) State {
	if log == nil {
		log = logging.NopLogger()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	s := State{Current: filepath.Clean(dir), log: log}
	s.Parent = parentOf(s.Current)
	s.Update()
	return s
}

func parentOf(dir string) string {
	p := filepath.Dir(dir)
	if p == dir {
		return ""
	}
	return p
}

// Update reloads both listings. Unreadable directories list as empty.
func (s *State) Update() {
	s.CurrentContent = s.load(s.Current)
	s.ParentContent = nil
	if s.Parent != "" {
		s.ParentContent = s.load(s.Parent)
	}
}

func (s *State) load(dir string) []Entry {
	entries, err := ReadEntries(dir)
	if err != nil {
		s.log.Warn("read dir failed", "dir", dir, "error", err)
		return []Entry{}
	}
	s.log.Debug("listed dir", "dir", dir, "count", len(entries))
	return entries
}

// Entries returns the current listing with the hidden filter applied.
func (s *State) Entries() []Entry { return Visible(s.CurrentContent, s.ShowHidden) }

// ParentEntries returns the parent listing with the hidden filter applied.
func (s *State) ParentEntries() []Entry { return Visible(s.ParentContent, s.ShowHidden) }

// Enter moves into the child directory name.
func (s *State) Enter(name string) error {
	target := filepath.Join(s.Current, name)
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("enter %s: %w", name, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("enter %s: %w", name, ErrNotDir)
	}
	s.moveTo(target)
	return nil
}

// Up moves to the parent directory and reports the name of the directory
// that was left, or false at the root.
func (s *State) Up() (string, bool) {
	if s.Parent == "" {
		return "", false
	}
	left := filepath.Base(s.Current)
	s.moveTo(s.Parent)
	return left, true
}

// Jump moves to an arbitrary directory.
func (s *State) Jump(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	s.moveTo(abs)
	return nil
}

func (s *State) moveTo(dir string) {
	s.Current = filepath.Clean(dir)
	s.Parent = parentOf(s.Current)
	s.log.Info("changed dir", "dir", s.Current)
	s.Update()
}

// Path joins name onto the current directory.
func (s *State) Path(name string) string { return filepath.Join(s.Current, name) }
