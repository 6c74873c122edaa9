// pattern: Imperative Shell

// Package browser holds the file browser state: the current directory, its
// parent, their listings and a preview of the selected entry.
package browser

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name    string
	Dir     bool
	Link    bool
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// Hidden reports whether the entry is a dotfile.
func (e Entry) Hidden() bool { return strings.HasPrefix(e.Name, ".") }

// Display is the name with a trailing "/" for directories and "@" for
// symlinks.
func (e Entry) Display() string {
	switch {
	case e.Dir:
		return e.Name + "/"
	case e.Link:
		return e.Name + "@"
	}
	return e.Name
}

// ReadEntries lists dir, sorted with directories first. Entries whose
// metadata cannot be read are kept with what the directory itself reports.
// Symlinks to directories count as directories.
func ReadEntries(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		e := Entry{Name: de.Name(), Dir: de.IsDir(), Mode: de.Type()}
		if info, err := de.Info(); err == nil {
			e.Size, e.Mode, e.ModTime = info.Size(), info.Mode(), info.ModTime()
		}
		if de.Type()&fs.ModeSymlink != 0 {
			e.Link = true
			if st, err := os.Stat(filepath.Join(dir, de.Name())); err == nil && st.IsDir() {
				e.Dir = true
			}
		}
		entries = append(entries, e)
	}
	SortEntries(entries)
	return entries, nil
}

// DirContents returns the names in path, or an empty list when path cannot
// be read.
func DirContents(path string) []string {
	entries, err := ReadEntries(path)
	if err != nil {
		return []string{}
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// SortEntries orders directories before files, then by case-folded name.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Dir != b.Dir {
			if a.Dir {
				return -1
			}
			return 1
		}
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// Visible filters out dotfiles unless showHidden is set.
func Visible(entries []Entry, showHidden bool) []Entry {
	if showHidden {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Hidden() {
			out = append(out, e)
		}
	}
	return out
}
