// pattern: Functional Core

package tui

import (
	"path/filepath"
	"slices"

	"github.com/sahilm/fuzzy"

	"yukari/internal/browser"
)

// row is one visible line of the current listing. matched holds the byte
// offsets of the name that matched the filter.
type row struct {
	entry   browser.Entry
	matched []int
}

// entrySource adapts a listing to fuzzy.Source.
type entrySource []browser.Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// filterRows returns entries in listing order when query is empty, or the
// fuzzy matches best first.
func filterRows(entries []browser.Entry, query string) []row {
	if query == "" {
		rows := make([]row, len(entries))
		for i, e := range entries {
			rows[i] = row{entry: e}
		}
		return rows
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	rows := make([]row, len(matches))
	for i, match := range matches {
		rows[i] = row{entry: entries[match.Index], matched: match.MatchedIndexes}
	}
	return rows
}

// indexOf returns the row holding name, or -1.
func indexOf(rows []row, name string) int {
	return slices.IndexFunc(rows, func(r row) bool { return r.entry.Name == name })
}

// column is an ancestor listing shown left of the current directory. trail
// names the child on the path to the current directory.
type column struct {
	dir     string
	entries []browser.Entry
	trail   string
}

// ancestorColumns lists the n directories above current, farthest first.
// Columns beyond the filesystem root are empty. parentEntries is reused for
// the nearest one so it is not read twice.
func ancestorColumns(current string, n int, parentEntries []browser.Entry, showHidden bool) []column {
	cols := make([]column, n)
	child := current
	for depth := 1; depth <= n; depth++ {
		dir := filepath.Dir(child)
		if dir == child {
			break
		}
		col := column{dir: dir, trail: filepath.Base(child)}
		if depth == 1 {
			col.entries = parentEntries
		} else {
			entries, _ := browser.ReadEntries(dir)
			col.entries = browser.Visible(entries, showHidden)
		}
		cols[n-depth] = col
		child = dir
	}
	return cols
}

// scrollTop returns the first visible row index that keeps cursor on
// screen in a column of the given height.
func scrollTop(cursor, height int) int {
	if height <= 0 || cursor < height {
		return 0
	}
	return cursor - height + 1
}
