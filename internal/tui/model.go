package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"yukari/internal/browser"
	"yukari/internal/config"
	"yukari/internal/logging"
	"yukari/internal/session"
	"yukari/internal/splitn"
)

// LogSource provides scoped loggers and the entries shown in the log panel.
type LogSource interface {
	logging.LoggerProvider
	logging.EntrySource
}

// DirWatcher replaces the set of watched directories.
type DirWatcher interface {
	Watch(dirs ...string) error
}

// StatusLevel selects the icon and color of the status bar message.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusError
)

// maxLogEntries bounds the log panel history.
const maxLogEntries = 500

// Model represents the TUI application state.
type Model struct {
	width     int
	height    int
	themeName string
	styles    *Styles
	keys      keyMap
	help      help.Model

	cfg   *config.Config
	state browser.State
	split splitn.Split

	// cursors remembers the selected name per directory.
	cursors  map[string]string
	selected int

	filtering bool
	filter    textinput.Model
	query     string

	preview      browser.Preview
	previewVP    viewport.Model
	previewReady bool

	ancestors []column

	activeBar int
	dragging  int // bar under the mouse, -1 when not dragging

	logPanelOpen bool
	logViewport  viewport.Model
	logReady     bool
	logEntries   []logging.LogEntry
	logManager   logging.EntrySource
	logger       *logging.ScopedLogger

	watcher DirWatcher

	statusLevel   StatusLevel
	statusMessage string
	lastCtrlCTime time.Time
	err           error
}

// NewModel creates a browser showing state with the panes laid out by
// split. logs may be nil.
func NewModel(cfg *config.Config, split splitn.Split, state browser.State, logs LogSource) Model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"

	styles := NewStyles(cfg.Theme)
	h := help.New()
	h.Styles.ShortKey = styles.AccentStyle()
	h.Styles.FullKey = styles.AccentStyle()
	h.Styles.ShortDesc = styles.HelpStyle()
	h.Styles.FullDesc = styles.HelpStyle()

	m := Model{
		themeName: cfg.Theme,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      h,
		cfg:       cfg,
		state:     state,
		split:     split,
		cursors:   make(map[string]string),
		filter:    filter,
		dragging:  -1,
		logger:    logging.NopLogger(),
	}
	if logs != nil {
		m.logManager = logs
		m.logger = logs.For("tui")
	}
	m.state.ShowHidden = m.state.ShowHidden || cfg.ShowHidden
	m.reloadAncestors()
	m.logger.Info("browser opened", "dir", state.Current, "panes", split.Panes())
	return m
}

// SetWatcher installs the directory watcher. Call before the program starts.
func (m *Model) SetWatcher(w DirWatcher) {
	m.watcher = w
}

// Init returns the initial command to run.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.setTitle(), m.loadPreview(), m.watchDirs()}
	if m.logManager != nil {
		cmds = append(cmds, m.consumeLogEntries(m.logManager))
	}
	return tea.Batch(cmds...)
}

// Session returns what should be restored next time: the directory, the
// split the user dragged to and the hidden-file toggle.
func (m Model) Session() session.State {
	return session.State{
		Dir:        m.state.Current,
		Panes:      m.split.Panes(),
		Ratios:     m.split.Chosen(),
		ShowHidden: m.state.ShowHidden,
	}
}

// Dir returns the directory being browsed.
func (m Model) Dir() string { return m.state.Current }

// Split returns the current pane split.
func (m Model) Split() splitn.Split { return m.split }

// currentPane is the index of the pane listing the current directory. The
// panes left of it show ancestors and the last pane shows the preview.
func (m Model) currentPane() int { return m.split.Panes() - 2 }

func (m Model) previewPane() int { return m.split.Panes() - 1 }

// rows returns the visible entries of the current directory after hidden
// files and the filter are applied.
func (m Model) rows() []row {
	return filterRows(m.state.Entries(), m.query)
}

// selectedEntry returns the entry under the cursor.
func (m Model) selectedEntry() (browser.Entry, bool) {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return browser.Entry{}, false
	}
	return rows[m.selected].entry, true
}

func (m Model) selectedPath() string {
	e, ok := m.selectedEntry()
	if !ok {
		return ""
	}
	return m.state.Path(e.Name)
}

func (m *Model) reloadAncestors() {
	n := m.split.Panes() - 2
	if n < 1 {
		m.ancestors = nil
		return
	}
	m.ancestors = ancestorColumns(m.state.Current, n, m.state.ParentEntries(), m.state.ShowHidden)
}

// setTitle returns a command that puts the current path in the window title.
func (m Model) setTitle() tea.Cmd {
	return tea.SetWindowTitle("yukari: " + m.state.Current)
}

func (m *Model) setStatus(level StatusLevel, msg string) {
	m.statusLevel = level
	m.statusMessage = msg
}

func (m *Model) clearStatus() {
	m.statusLevel = StatusInfo
	m.statusMessage = ""
	m.err = nil
}
