// pattern: Imperative Shell

package browser

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// DefaultPreviewBytes caps how much of a file is read for its preview.
const DefaultPreviewBytes = 16 * 1024

// PreviewKind tells the renderer how to present a Preview.
type PreviewKind int

const (
	PreviewEmpty PreviewKind = iota
	PreviewText
	PreviewBinary
	PreviewDir
	PreviewError
)

// Preview is what the third pane shows for the selected entry.
type Preview struct {
	Path      string
	Kind      PreviewKind
	Lines     []string // text lines or hex dump rows
	Entries   []Entry  // directory children
	Truncated bool
	Err       error
}

// Load builds the preview of path reading at most limit bytes of a file.
// A limit of zero or less uses DefaultPreviewBytes.
func Load(path string, limit int, showHidden bool) Preview {
	if limit <= 0 {
		limit = DefaultPreviewBytes
	}
	p := Preview{Path: path}

	st, err := os.Stat(path)
	if err != nil {
		p.Kind, p.Err = PreviewError, err
		return p
	}
	if st.IsDir() {
		entries, err := ReadEntries(path)
		if err != nil {
			p.Kind, p.Err = PreviewError, err
			return p
		}
		p.Kind, p.Entries = PreviewDir, Visible(entries, showHidden)
		return p
	}
	if !st.Mode().IsRegular() {
		p.Kind, p.Lines = PreviewText, []string{fmt.Sprintf("%s (%s)", st.Mode().Type(), st.Mode())}
		return p
	}

	f, err := os.Open(path)
	if err != nil {
		p.Kind, p.Err = PreviewError, err
		return p
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, int64(limit)))
	if err != nil {
		p.Kind, p.Err = PreviewError, err
		return p
	}
	p.Truncated = st.Size() > int64(len(head))
	if len(head) == 0 {
		p.Kind = PreviewEmpty
		return p
	}
	if IsText(head) {
		p.Kind, p.Lines = PreviewText, TextLines(head)
		return p
	}
	p.Kind, p.Lines = PreviewBinary, HexLines(head)
	return p
}

// IsText reports whether b looks like text: valid UTF-8 apart from a rune
// cut off at the end, and no NUL bytes.
func IsText(b []byte) bool {
	if bytes.IndexByte(b, 0) >= 0 {
		return false
	}
	for i := 0; i < utf8.UTFMax && len(b) > 0 && !utf8.Valid(b); i++ {
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}

// TextLines splits text into display lines with escape sequences removed and
// tabs expanded to four spaces.
func TextLines(b []byte) []string {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.ReplaceAll(ansi.Strip(l), "\t", "    ")
	}
	return lines
}

// HexLines renders b as a canonical hex dump, one row per line.
func HexLines(b []byte) []string {
	return strings.Split(strings.TrimSuffix(hex.Dump(b), "\n"), "\n")
}
