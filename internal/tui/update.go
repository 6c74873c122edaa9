// pattern: Imperative Shell

package tui

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"yukari/internal/browser"
	"yukari/internal/events"
	"yukari/internal/logging"
	"yukari/internal/splitn"
)

// doubleCtrlCWindow is the maximum time between two ctrl+c presses to trigger quit.
const doubleCtrlCWindow = 500 * time.Millisecond

const quitHint = "ctrl+c ctrl+c to quit"

// previewLoadedMsg carries the preview of path, loaded off the UI goroutine.
type previewLoadedMsg struct {
	path    string
	preview browser.Preview
}

// logEntriesMsg delivers log entries from the logging channel.
type logEntriesMsg struct {
	entries []logging.LogEntry
}

// clearStatusMsg is sent after a timed delay to clear the status bar.
type clearStatusMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case previewLoadedMsg:
		// The cursor may have moved on while the preview was loading.
		if msg.path != m.selectedPath() {
			return m, nil
		}
		m.preview = msg.preview
		m.updatePreviewContent()
		m.previewVP.GotoTop()
		return m, nil

	case events.DirChangedMsg:
		if msg.Dir != m.state.Current && msg.Dir != m.state.Parent {
			return m, nil
		}
		m.logger.Debug("dir changed on disk", "dir", msg.Dir)
		cmd := m.refresh()
		return m, cmd

	case events.WatchErrorMsg:
		m.logger.Warn("watch failed", "error", msg.Err)
		m.err = msg.Err
		m.setStatus(StatusError, "live refresh unavailable")
		return m, nil

	case logEntriesMsg:
		for _, entry := range msg.entries {
			m.addLogEntry(entry)
		}
		if m.logPanelOpen && m.logReady {
			m.updateLogViewportContent()
		}
		if m.logManager != nil {
			return m, m.consumeLogEntries(m.logManager)
		}
		return m, nil

	case clearStatusMsg:
		// Only clear if still showing the quit hint (don't clobber other status)
		if m.statusLevel == StatusInfo && m.statusMessage == quitHint {
			m.clearStatus()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit shortcuts first (ctrl+d always, ctrl+c double-press)
	if msg.Type == tea.KeyCtrlD {
		m.logger.Debug("quit via ctrl+d")
		return m, tea.Quit
	}
	if msg.Type == tea.KeyCtrlC {
		now := time.Now()
		if !m.lastCtrlCTime.IsZero() && now.Sub(m.lastCtrlCTime) <= doubleCtrlCWindow {
			m.logger.Debug("quit via double ctrl+c")
			return m, tea.Quit
		}
		m.lastCtrlCTime = now
		m.setStatus(StatusInfo, quitHint)
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if msg.Type == tea.KeyEscape {
		switch {
		case m.statusLevel == StatusError:
			m.clearStatus()
		case m.query != "":
			cmd := m.clearFilter()
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		cmd := m.moveCursor(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		cmd := m.moveCursor(1)
		return m, cmd
	case key.Matches(msg, m.keys.Top):
		cmd := m.moveCursor(-len(m.rows()))
		return m, cmd
	case key.Matches(msg, m.keys.Bottom):
		cmd := m.moveCursor(len(m.rows()))
		return m, cmd
	case key.Matches(msg, m.keys.PageUp):
		cmd := m.moveCursor(-m.layout().Content.Height)
		return m, cmd
	case key.Matches(msg, m.keys.PageDown):
		cmd := m.moveCursor(m.layout().Content.Height)
		return m, cmd
	case key.Matches(msg, m.keys.Enter):
		cmd := m.enterSelected()
		return m, cmd
	case key.Matches(msg, m.keys.Parent):
		cmd := m.goUp()
		return m, cmd
	case key.Matches(msg, m.keys.Home):
		home, err := os.UserHomeDir()
		if err != nil {
			m.err = err
			m.setStatus(StatusError, "no home directory")
			return m, nil
		}
		cmd := m.jump(home)
		return m, cmd
	case key.Matches(msg, m.keys.Hidden):
		cmd := m.toggleHidden()
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue(m.query)
		m.filter.CursorEnd()
		cmd := m.filter.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.PreviewUp):
		m.previewVP.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.PreviewDn):
		m.previewVP.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.NextBar):
		if bars := m.split.Panes() - 1; bars > 0 {
			m.activeBar = (m.activeBar + 1) % bars
		}
		return m, nil
	case key.Matches(msg, m.keys.Shrink):
		m.nudge(-1)
		return m, nil
	case key.Matches(msg, m.keys.Grow):
		m.nudge(1)
		return m, nil
	case key.Matches(msg, m.keys.ResetSplit):
		m.split = m.split.Reset()
		m.logger.Info("split reset", "offsets", m.split.Offsets())
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.logPanelOpen = !m.logPanelOpen
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.query = m.filter.Value()
		return m, nil
	case tea.KeyEscape:
		m.filtering = false
		m.filter.Blur()
		cmd := m.clearFilter()
		return m, cmd
	case tea.KeyUp:
		cmd := m.moveCursor(-1)
		return m, cmd
	case tea.KeyDown:
		cmd := m.moveCursor(1)
		return m, cmd
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if q := m.filter.Value(); q != m.query {
		m.query = q
		m.selected = 0
		return m, tea.Batch(cmd, m.loadPreview())
	}
	return m, cmd
}

// clearFilter drops the filter, keeping the selected entry under the cursor.
func (m *Model) clearFilter() tea.Cmd {
	name := ""
	if e, ok := m.selectedEntry(); ok {
		name = e.Name
	}
	m.filter.Reset()
	m.query = ""
	m.selectName(name)
	return m.loadPreview()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	layout := m.layout()
	geom := m.split.Cells(m.width)

	switch msg.Action {
	case tea.MouseActionPress:
		if !layout.Content.Contains(msg.X, msg.Y) {
			return m, nil
		}
		pane := geom.PaneAt(msg.X)
		switch msg.Button {
		case tea.MouseButtonLeft:
			if bar := geom.BarAt(msg.X); bar >= 0 {
				if m.split.Draggable() {
					m.dragging = bar
					m.activeBar = bar
				}
				return m, nil
			}
			if pane == m.currentPane() {
				top := scrollTop(m.selected, layout.Content.Height)
				idx := top + msg.Y - layout.Content.Y
				if idx >= 0 && idx < len(m.rows()) && idx != m.selected {
					m.selected = idx
					return m, m.loadPreview()
				}
			}
		case tea.MouseButtonWheelUp:
			if pane == m.previewPane() {
				m.previewVP.ScrollUp(3)
				return m, nil
			}
			cmd := m.moveCursor(-1)
			return m, cmd
		case tea.MouseButtonWheelDown:
			if pane == m.previewPane() {
				m.previewVP.ScrollDown(3)
				return m, nil
			}
			cmd := m.moveCursor(1)
			return m, cmd
		}

	case tea.MouseActionMotion:
		if m.dragging < 0 {
			return m, nil
		}
		s, err := m.split.DragTo(m.dragging, msg.X, m.width)
		if err != nil {
			return m, nil
		}
		m.split = s
		m.resize()

	case tea.MouseActionRelease:
		if m.dragging >= 0 {
			m.logger.Info("bar dragged", "bar", m.dragging, "offsets", m.split.Offsets())
			m.dragging = -1
		}
	}
	return m, nil
}

// moveCursor moves the selection by delta rows, clamped to the listing.
func (m *Model) moveCursor(delta int) tea.Cmd {
	n := len(m.rows())
	if n == 0 {
		return nil
	}
	next := min(max(m.selected+delta, 0), n-1)
	if next == m.selected {
		return nil
	}
	m.selected = next
	return m.loadPreview()
}

// selectName puts the cursor on name, or clamps it when name is not listed.
func (m *Model) selectName(name string) {
	rows := m.rows()
	if i := indexOf(rows, name); i >= 0 {
		m.selected = i
		return
	}
	m.selected = min(m.selected, max(len(rows)-1, 0))
}

func (m *Model) enterSelected() tea.Cmd {
	e, ok := m.selectedEntry()
	if !ok || !e.Dir {
		return nil
	}
	from := m.state.Current
	if err := m.state.Enter(e.Name); err != nil {
		m.logger.Warn("enter failed", "name", e.Name, "error", err)
		m.err = err
		m.setStatus(StatusError, "cannot open "+e.Name)
		return nil
	}
	m.cursors[from] = e.Name
	return m.afterMove(m.cursors[m.state.Current])
}

func (m *Model) goUp() tea.Cmd {
	from := m.state.Current
	if e, ok := m.selectedEntry(); ok {
		m.cursors[from] = e.Name
	}
	left, ok := m.state.Up()
	if !ok {
		return nil
	}
	return m.afterMove(left)
}

func (m *Model) jump(dir string) tea.Cmd {
	if e, ok := m.selectedEntry(); ok {
		m.cursors[m.state.Current] = e.Name
	}
	if err := m.state.Jump(dir); err != nil {
		m.err = err
		m.setStatus(StatusError, "cannot open "+dir)
		return nil
	}
	return m.afterMove(m.cursors[m.state.Current])
}

// afterMove resets per-directory view state once the current directory
// changed and selects name when it is listed.
func (m *Model) afterMove(name string) tea.Cmd {
	m.filtering = false
	m.filter.Blur()
	m.filter.Reset()
	m.query = ""
	m.selected = 0
	m.selectName(name)
	m.reloadAncestors()
	if m.statusLevel == StatusError {
		m.clearStatus()
	}
	return tea.Batch(m.setTitle(), m.loadPreview(), m.watchDirs())
}

// refresh reloads the listings after a change on disk. If the current
// directory was removed the browser climbs to the nearest existing parent.
func (m *Model) refresh() tea.Cmd {
	name := ""
	if e, ok := m.selectedEntry(); ok {
		name = e.Name
	}
	for m.state.Parent != "" {
		if _, err := os.Stat(m.state.Current); !errors.Is(err, os.ErrNotExist) {
			break
		}
		m.state.Up()
		name = ""
	}
	m.state.Update()
	m.selectName(name)
	m.reloadAncestors()
	return tea.Batch(m.loadPreview(), m.watchDirs())
}

func (m *Model) toggleHidden() tea.Cmd {
	name := ""
	if e, ok := m.selectedEntry(); ok {
		name = e.Name
	}
	m.state.ShowHidden = !m.state.ShowHidden
	m.selectName(name)
	m.reloadAncestors()
	if m.state.ShowHidden {
		m.setStatus(StatusInfo, "showing hidden files")
	} else {
		m.setStatus(StatusInfo, "hiding hidden files")
	}
	return m.loadPreview()
}

// nudge moves the active bar by delta cells.
func (m *Model) nudge(delta int) {
	s, err := m.split.Nudge(m.activeBar, delta, m.width)
	if err != nil {
		if errors.Is(err, splitn.ErrNotDraggable) {
			m.setStatus(StatusInfo, "split is fixed")
		}
		m.logger.Debug("nudge rejected", "bar", m.activeBar, "delta", delta, "error", err)
		return
	}
	m.split = s
	m.resize()
}

// loadPreview returns a command that loads the selected entry's preview.
func (m Model) loadPreview() tea.Cmd {
	path := m.selectedPath()
	limit := m.cfg.PreviewBytes
	showHidden := m.state.ShowHidden
	return func() tea.Msg {
		if path == "" {
			return previewLoadedMsg{}
		}
		return previewLoadedMsg{path: path, preview: browser.Load(path, limit, showHidden)}
	}
}

// watchDirs points the watcher at the current and parent directories.
func (m Model) watchDirs() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	dirs := []string{m.state.Current, m.state.Parent}
	return func() tea.Msg {
		if err := w.Watch(dirs...); err != nil {
			return events.WatchErrorMsg{Err: err}
		}
		return nil
	}
}

// consumeLogEntries waits for the next log entry and drains whatever else
// is already queued.
func (m Model) consumeLogEntries(src logging.EntrySource) tea.Cmd {
	ch := src.Entries()
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		entries := []logging.LogEntry{entry}
		for len(entries) < 100 {
			select {
			case e, ok := <-ch:
				if !ok {
					return logEntriesMsg{entries: entries}
				}
				entries = append(entries, e)
			default:
				return logEntriesMsg{entries: entries}
			}
		}
		return logEntriesMsg{entries: entries}
	}
}

func (m *Model) addLogEntry(entry logging.LogEntry) {
	m.logEntries = append(m.logEntries, entry)
	if over := len(m.logEntries) - maxLogEntries; over > 0 {
		m.logEntries = m.logEntries[over:]
	}
}

// layout computes the regions for the current window and split.
func (m Model) layout() Layout {
	helpLines := 0
	if m.help.ShowAll {
		helpLines = fullHelpHeight(m.keys)
	}
	return ComputeLayout(m.width, m.height, m.split.Cells(m.width), m.logPanelOpen, helpLines)
}

func fullHelpHeight(k keyMap) int {
	h := 0
	for _, group := range k.FullHelp() {
		h = max(h, len(group))
	}
	return h
}

// resize fits the viewports to the current layout.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	layout := m.layout()
	m.help.Width = m.width

	preview := layout.Panes[m.previewPane()]
	if !m.previewReady {
		m.previewVP = viewport.New(preview.Width, preview.Height)
		m.previewReady = true
	} else {
		m.previewVP.Width = preview.Width
		m.previewVP.Height = preview.Height
	}
	m.updatePreviewContent()

	if m.logPanelOpen {
		if !m.logReady {
			m.logViewport = viewport.New(layout.Logs.Width, layout.Logs.Height-1)
			m.logReady = true
		} else {
			m.logViewport.Width = layout.Logs.Width
			m.logViewport.Height = layout.Logs.Height - 1
		}
		m.updateLogViewportContent()
	}
}
