// pattern: Functional Core

package splitn

import (
	"yukari/internal/ratio"
)

// Segment is a run of cells along the split axis.
type Segment struct {
	Start int
	Size  int
}

// End returns the first cell past the segment.
func (s Segment) End() int { return s.Start + s.Size }

// Contains reports whether pos falls inside the segment.
func (s Segment) Contains(pos int) bool { return pos >= s.Start && pos < s.End() }

// Geometry is a split resolved to whole cells: one segment per pane and one
// per bar, in order along the axis.
type Geometry struct {
	Panes []Segment
	Bars  []Segment
}

// Cells resolves the split over extent cells. Bars take their fixed size
// first; the remaining cells are divided at floor(offset * usable) for each
// boundary, then panes below their minimum size borrow cells from the panes
// after and before them. When the minimums cannot all be met the
// proportional sizes are kept.
func (s Split) Cells(extent int) Geometry {
	n := s.panes
	usable := max(s.usable(extent), 0)

	sizes := make([]int, n)
	prev := 0
	for i, off := range s.offsets {
		pos := cellAt(off, usable)
		sizes[i] = pos - prev
		prev = pos
	}
	sizes[n-1] = usable - prev

	enforceMinimums(sizes, s.minSizes, usable)

	g := Geometry{
		Panes: make([]Segment, n),
		Bars:  make([]Segment, 0, n-1),
	}
	pos := 0
	for i, size := range sizes {
		g.Panes[i] = Segment{Start: pos, Size: size}
		pos += size
		if i < n-1 {
			bar := min(s.barSize, max(extent-pos, 0))
			g.Bars = append(g.Bars, Segment{Start: pos, Size: bar})
			pos += bar
		}
	}
	return g
}

// cellAt returns floor(off * usable), computed exactly when the product fits.
func cellAt(off ratio.Rational, usable int) int {
	p, err := ratio.TryMul(off, ratio.FromInt(usable))
	if err != nil {
		return int(off.Float64() * float64(usable))
	}
	return int(p.Floor())
}

func enforceMinimums(sizes, mins []int, usable int) {
	total := 0
	for _, m := range mins {
		total += m
	}
	if total == 0 || total > usable {
		return
	}

	for i := range sizes {
		deficit := mins[i] - sizes[i]
		if deficit <= 0 {
			continue
		}
		sizes[i] = mins[i]
		// Borrow from the following panes first, nearest first.
		for j := i + 1; j < len(sizes) && deficit > 0; j++ {
			deficit -= take(sizes, mins, j, deficit)
		}
		for j := i - 1; j >= 0 && deficit > 0; j-- {
			deficit -= take(sizes, mins, j, deficit)
		}
	}
}

func take(sizes, mins []int, j, want int) int {
	n := min(max(sizes[j]-mins[j], 0), want)
	sizes[j] -= n
	return n
}

// PaneAt returns the index of the pane containing pos, or -1.
func (g Geometry) PaneAt(pos int) int {
	for i, p := range g.Panes {
		if p.Contains(pos) {
			return i
		}
	}
	return -1
}

// BarAt returns the index of the bar containing pos, or -1. Bars are
// numbered like the boundaries they draw.
func (g Geometry) BarAt(pos int) int {
	for i, b := range g.Bars {
		if b.Contains(pos) {
			return i
		}
	}
	return -1
}
