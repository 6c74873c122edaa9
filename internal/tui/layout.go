// pattern: Functional Core

package tui

import "yukari/internal/splitn"

// Region defines a rectangular area within the terminal.
type Region struct {
	X      int // Left position (0-indexed)
	Y      int // Top position (0-indexed)
	Width  int // Width in cells
	Height int // Height in lines
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Layout holds computed regions for all UI components.
type Layout struct {
	Header    Region   // App title (1 line)
	Content   Region   // Pane area (dynamic)
	Panes     []Region // One per split pane, left to right
	Bars      []Region // Dividers between panes
	Footer    Region   // Current path (1 line)
	Help      Region   // Full key help when shown
	Separator Region   // Separator between content and logs (1 line when logs open)
	Logs      Region   // Log panel when open
	StatusBar Region   // Status bar (1 line)
}

// Fixed heights for chrome elements
const (
	headerHeight    = 1
	footerHeight    = 1
	statusBarHeight = 1
	separatorHeight = 1
	minContent      = 3
)

// ComputeLayout calculates regions based on terminal dimensions. The pane
// columns come from geom, the split's cell geometry for width. When
// logPanelOpen is true the space below the footer is split 60/40 between
// panes and logs. helpLines reserves room for the full key help.
func ComputeLayout(width, height int, geom splitn.Geometry, logPanelOpen bool, helpLines int) Layout {
	fixedHeight := headerHeight + footerHeight + statusBarHeight + helpLines
	availableHeight := height - fixedHeight
	if availableHeight < minContent {
		availableHeight = minContent
	}

	var contentHeight, logsHeight int
	if logPanelOpen {
		availableHeight -= separatorHeight
		contentHeight = int(float64(availableHeight) * 0.6)
		if contentHeight < minContent {
			contentHeight = minContent
		}
		logsHeight = availableHeight - contentHeight
		if logsHeight < 1 {
			logsHeight = 1
		}
	} else {
		contentHeight = availableHeight
	}

	y := 0
	header := Region{X: 0, Y: y, Width: width, Height: headerHeight}
	y += headerHeight

	content := Region{X: 0, Y: y, Width: width, Height: contentHeight}
	panes := make([]Region, len(geom.Panes))
	for i, seg := range geom.Panes {
		panes[i] = Region{X: seg.Start, Y: y, Width: seg.Size, Height: contentHeight}
	}
	bars := make([]Region, len(geom.Bars))
	for i, seg := range geom.Bars {
		bars[i] = Region{X: seg.Start, Y: y, Width: seg.Size, Height: contentHeight}
	}
	y += contentHeight

	footer := Region{X: 0, Y: y, Width: width, Height: footerHeight}
	y += footerHeight

	var help Region
	if helpLines > 0 {
		help = Region{X: 0, Y: y, Width: width, Height: helpLines}
		y += helpLines
	}

	var separator, logs Region
	if logPanelOpen {
		separator = Region{X: 0, Y: y, Width: width, Height: separatorHeight}
		y += separatorHeight
		logs = Region{X: 0, Y: y, Width: width, Height: logsHeight}
		y += logsHeight
	}

	statusBar := Region{X: 0, Y: y, Width: width, Height: statusBarHeight}

	return Layout{
		Header:    header,
		Content:   content,
		Panes:     panes,
		Bars:      bars,
		Footer:    footer,
		Help:      help,
		Separator: separator,
		Logs:      logs,
		StatusBar: statusBar,
	}
}
