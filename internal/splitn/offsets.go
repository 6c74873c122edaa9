// pattern: Functional Core

// Package splitn partitions an extent into N proportional panes.
//
// Ratios chosen by the user are spans: each is the fraction of the whole
// extent given to one of the leading panes. Offsets are the cumulative
// positions of the N-1 internal boundaries. Panes without a chosen span share
// what is left evenly. All arithmetic is exact.
package splitn

import (
	"errors"
	"fmt"

	"yukari/internal/ratio"
)

// Errors returned by the split computations.
var (
	ErrInvalidRatioSum  = errors.New("split ratios exceed total span")
	ErrInvalidRatio     = errors.New("split ratio must be a positive finite fraction")
	ErrInvalidPaneCount = errors.New("pane count must be at least 1")
	ErrNotDraggable     = errors.New("split is not draggable")
	ErrBoundary         = errors.New("boundary out of range")
)

// SplitEvenly divides [start, 1] into parts equal gaps and returns the
// parts-1 boundaries between them: start+inc, start+2*inc, ... with
// inc = (1-start)/parts. The sequence is bounded by count, so the last
// boundary is start+(parts-1)*inc exactly. parts <= 1 yields no boundaries.
func SplitEvenly(parts int, start ratio.Rational) ([]ratio.Rational, error) {
	if parts <= 1 {
		return []ratio.Rational{}, nil
	}
	remaining, err := ratio.TrySub(ratio.One, start)
	if err != nil {
		return nil, err
	}
	inc, err := ratio.TryDiv(remaining, ratio.FromInt(parts))
	if err != nil {
		return nil, err
	}

	out := make([]ratio.Rational, 0, parts-1)
	x := start
	for range parts - 1 {
		if x, err = ratio.TryAdd(x, inc); err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// ComputeOffsets returns the paneCount-1 boundary offsets for paneCount
// panes given the user-chosen spans.
//
// When chosen has paneCount-1 entries or more, only the first paneCount-1 are
// kept, in order; the rest are dropped. Each kept span must be positive and
// finite and together they may not exceed 1. A sum of exactly 1 is accepted
// only when every boundary was chosen, leaving the last pane empty. The kept
// spans fix the leading boundaries; the remaining boundaries subdivide what is
// left of the extent evenly.
//
// On error no offsets are returned.
func ComputeOffsets(paneCount int, chosen []ratio.Rational) ([]ratio.Rational, error) {
	if paneCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPaneCount, paneCount)
	}
	need := paneCount - 1
	if len(chosen) > need {
		chosen = chosen[:need]
	}

	offsets := make([]ratio.Rational, 0, need)
	sum := ratio.Zero
	for i, span := range chosen {
		if !span.IsFinite() || span.Sign() <= 0 {
			return nil, fmt.Errorf("%w: span %d is %s", ErrInvalidRatio, i, span)
		}
		var err error
		if sum, err = ratio.TryAdd(sum, span); err != nil {
			return nil, fmt.Errorf("summing span %d: %w", i, err)
		}
		if ratio.One.Less(sum) {
			return nil, fmt.Errorf("%w: spans through %d sum to %s", ErrInvalidRatioSum, i, sum)
		}
		offsets = append(offsets, sum)
	}
	if len(chosen) < need && sum.Equal(ratio.One) {
		return nil, fmt.Errorf("%w: no span left for %d remaining panes", ErrInvalidRatioSum, need-len(chosen))
	}

	rest, err := SplitEvenly(need-len(chosen)+1, sum)
	if err != nil {
		return nil, fmt.Errorf("splitting remainder: %w", err)
	}
	return append(offsets, rest...), nil
}

// Spans converts offsets back into the widths of the panes they delimit:
// the gaps between 0, each offset, and 1. The spans sum to exactly 1.
func Spans(offsets []ratio.Rational) []ratio.Rational {
	spans := make([]ratio.Rational, 0, len(offsets)+1)
	prev := ratio.Zero
	for _, off := range offsets {
		spans = append(spans, off.Sub(prev))
		prev = off
	}
	return append(spans, ratio.One.Sub(prev))
}
