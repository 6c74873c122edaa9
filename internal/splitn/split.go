// pattern: Functional Core

package splitn

import (
	"fmt"
	"slices"

	"yukari/internal/ratio"
)

// Axis is the direction along which panes are laid out.
type Axis int

const (
	// Horizontal places panes side by side (columns).
	Horizontal Axis = iota
	// Vertical stacks panes top to bottom (rows).
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// DefaultBarSize is the thickness of the bar between two panes, in cells.
const DefaultBarSize = 1

// Split is the state of an N-way split: the chosen spans, the offsets they
// produce, and the presentation flags the layout code reads. Methods return
// modified copies; a Split is never changed in place.
type Split struct {
	axis      Axis
	panes     int
	chosen    []ratio.Rational
	offsets   []ratio.Rational
	minSizes  []int
	barSize   int
	solid     bool
	draggable bool
}

// New returns an evenly divided split of panes panes along axis.
func New(axis Axis, panes int) (Split, error) {
	offsets, err := ComputeOffsets(panes, nil)
	if err != nil {
		return Split{}, err
	}
	return Split{
		axis:     axis,
		panes:    panes,
		offsets:  offsets,
		minSizes: make([]int, panes),
		barSize:  DefaultBarSize,
		solid:    true,
	}, nil
}

// Columns is New(Horizontal, panes).
func Columns(panes int) (Split, error) { return New(Horizontal, panes) }

// Rows is New(Vertical, panes).
func Rows(panes int) (Split, error) { return New(Vertical, panes) }

// WithRatios sets the chosen spans and recomputes the offsets. Extra spans
// beyond Panes()-1 are dropped.
func (s Split) WithRatios(chosen []ratio.Rational) (Split, error) {
	offsets, err := ComputeOffsets(s.panes, chosen)
	if err != nil {
		return s, err
	}
	if len(chosen) > s.panes-1 {
		chosen = chosen[:s.panes-1]
	}
	s.chosen = slices.Clone(chosen)
	s.offsets = offsets
	return s, nil
}

// WithMinSizes sets the minimum size of each pane in cells. Missing entries
// are zero and extra entries are ignored.
func (s Split) WithMinSizes(sizes ...int) Split {
	mins := make([]int, s.panes)
	for i := range min(len(sizes), s.panes) {
		mins[i] = max(sizes[i], 0)
	}
	s.minSizes = mins
	return s
}

// WithBarSize sets the bar thickness in cells.
func (s Split) WithBarSize(size int) Split {
	s.barSize = max(size, 0)
	return s
}

// WithSolid selects a solid (true) or dashed bar.
func (s Split) WithSolid(solid bool) Split {
	s.solid = solid
	return s
}

// WithDraggable allows or forbids Drag and Nudge.
func (s Split) WithDraggable(draggable bool) Split {
	s.draggable = draggable
	return s
}

func (s Split) Axis() Axis { return s.axis }
func (s Split) Panes() int { return s.panes }
func (s Split) BarSize() int { return s.barSize }
func (s Split) Solid() bool { return s.solid }
func (s Split) Draggable() bool { return s.draggable }
func (s Split) MinSizes() []int { return slices.Clone(s.minSizes) }

// Offsets returns the boundary offsets, strictly increasing within (0, 1].
func (s Split) Offsets() []ratio.Rational { return slices.Clone(s.offsets) }

// Chosen returns the spans fixed by the user.
func (s Split) Chosen() []ratio.Rational { return slices.Clone(s.chosen) }

// Spans returns the fraction of the extent given to each pane.
func (s Split) Spans() []ratio.Rational { return Spans(s.offsets) }

// Reset forgets the chosen spans and splits evenly again.
func (s Split) Reset() Split {
	s.chosen = nil
	s.offsets, _ = ComputeOffsets(s.panes, nil)
	return s
}

// Drag moves boundary to the position to. The boundaries before it keep
// their place and become chosen spans along with the dragged one; the panes
// after it share the rest of the extent evenly.
func (s Split) Drag(boundary int, to ratio.Rational) (Split, error) {
	if !s.draggable {
		return s, ErrNotDraggable
	}
	if boundary < 0 || boundary >= len(s.offsets) {
		return s, fmt.Errorf("%w: %d of %d", ErrBoundary, boundary, len(s.offsets))
	}
	prev := ratio.Zero
	if boundary > 0 {
		prev = s.offsets[boundary-1]
	}
	if !prev.Less(to) || !to.Less(ratio.One) {
		return s, fmt.Errorf("%w: %s not within (%s, 1)", ErrBoundary, to, prev)
	}

	chosen := Spans(s.offsets[:boundary])[:boundary]
	span, err := ratio.TrySub(to, prev)
	if err != nil {
		return s, err
	}
	return s.WithRatios(append(chosen, span))
}

// Nudge moves boundary by cells cells within an extent of extent cells.
func (s Split) Nudge(boundary, cells, extent int) (Split, error) {
	if boundary < 0 || boundary >= len(s.offsets) {
		return s, fmt.Errorf("%w: %d of %d", ErrBoundary, boundary, len(s.offsets))
	}
	usable := s.usable(extent)
	if usable <= 0 {
		return s, fmt.Errorf("%w: no room to move in %d cells", ErrBoundary, extent)
	}
	step, err := ratio.TryNew(int64(cells), int64(usable))
	if err != nil {
		return s, err
	}
	to, err := ratio.TryAdd(s.offsets[boundary], step)
	if err != nil {
		return s, err
	}
	return s.Drag(boundary, to)
}

// DragTo moves boundary to the cell position pos within extent, where pos
// is measured from the start of the split including bars.
func (s Split) DragTo(boundary, pos, extent int) (Split, error) {
	usable := s.usable(extent)
	if usable <= 0 {
		return s, fmt.Errorf("%w: no room to move in %d cells", ErrBoundary, extent)
	}
	to, err := ratio.TryNew(int64(pos-boundary*s.barSize), int64(usable))
	if err != nil {
		return s, err
	}
	return s.Drag(boundary, to)
}

func (s Split) usable(extent int) int {
	return extent - s.barSize*(s.panes-1)
}
