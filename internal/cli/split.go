// pattern: Functional Core
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"yukari/internal/ratio"
	"yukari/internal/splitn"
)

const splitUsage = "Usage: yukari split <panes> [ratio...] [-w/--width W] [-b/--bar B] [--json]"

var errSplitUsage = errors.New("usage: yukari split <panes> [ratio...] [-w/--width W] [-b/--bar B] [--json]")

type segmentJSON struct {
	Start int `json:"start"`
	Size  int `json:"size"`
}

type splitJSON struct {
	Panes   int              `json:"panes"`
	Offsets []ratio.Rational `json:"offsets"`
	Spans   []ratio.Rational `json:"spans"`
	Width   int              `json:"width,omitempty"`
	Cells   []segmentJSON    `json:"cells,omitempty"`
	Bars    []segmentJSON    `json:"bars,omitempty"`
}

// runSplitCommand prints the boundary offsets for a split into the given
// number of panes. Ratios are the leading pane spans; the rest divide evenly.
// With --width the cell geometry for that extent is printed too.
func runSplitCommand(stdout, stderr io.Writer, args []string) error {
	fs := newFlagSet("split", stderr)
	width := fs.IntP("width", "w", 0, "extent in cells to lay out")
	bar := fs.IntP("bar", "b", splitn.DefaultBarSize, "bar size in cells")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return errSplitUsage
	}
	if fs.NArg() < 1 {
		return errSplitUsage
	}

	panes, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid pane count %q: must be an integer", fs.Arg(0))
	}
	chosen := make([]ratio.Rational, 0, fs.NArg()-1)
	for _, arg := range fs.Args()[1:] {
		r, err := ratio.Parse(arg)
		if err != nil {
			return err
		}
		chosen = append(chosen, r)
	}

	s, err := splitn.Columns(panes)
	if err != nil {
		return err
	}
	if s, err = s.WithRatios(chosen); err != nil {
		return err
	}
	s = s.WithBarSize(*bar)

	out := splitJSON{Panes: panes, Offsets: s.Offsets(), Spans: s.Spans()}
	if *width > 0 {
		g := s.Cells(*width)
		out.Width = *width
		out.Cells = segments(g.Panes)
		out.Bars = segments(g.Bars)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printSplit(stdout, out)
}

func segments(in []splitn.Segment) []segmentJSON {
	out := make([]segmentJSON, len(in))
	for i, s := range in {
		out[i] = segmentJSON{Start: s.Start, Size: s.Size}
	}
	return out
}

func printSplit(w io.Writer, out splitJSON) error {
	fmt.Fprintf(w, "offsets: %s\n", joinRatios(out.Offsets))
	fmt.Fprintf(w, "spans:   %s\n", joinRatios(out.Spans))
	for i, c := range out.Cells {
		fmt.Fprintf(w, "pane %d: %d..%d (%d)\n", i, c.Start, c.Start+c.Size, c.Size)
	}
	for i, b := range out.Bars {
		if _, err := fmt.Fprintf(w, "bar  %d: %d..%d\n", i, b.Start, b.Start+b.Size); err != nil {
			return err
		}
	}
	return nil
}

func joinRatios(rs []ratio.Rational) string {
	if len(rs) == 0 {
		return "-"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}
