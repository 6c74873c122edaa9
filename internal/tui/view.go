// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"yukari/internal/browser"
	"yukari/internal/logging"
	"yukari/internal/ratio"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	layout := m.layout()

	header := m.renderHeader(layout.Header.Width)
	content := m.renderPanes(layout)
	footer := m.renderFooter(layout.Footer.Width)

	parts := []string{header, content, footer}

	if m.help.ShowAll {
		parts = append(parts, lipgloss.NewStyle().
			Width(layout.Help.Width).
			Height(layout.Help.Height).
			Render(m.help.FullHelpView(m.keys.FullHelp())))
	}

	if m.logPanelOpen {
		separator := m.styles.SeparatorStyle().
			Width(layout.Separator.Width).
			Render(strings.Repeat("─", layout.Separator.Width))
		parts = append(parts, separator, m.renderLogPanel(layout))
	}

	statusBar := lipgloss.NewStyle().Width(layout.StatusBar.Width).Render(m.renderStatusBar(layout.StatusBar.Width))
	parts = append(parts, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(width int) string {
	title := m.styles.TitleStyle().Render("yukari")
	offsets := m.styles.SubtitleStyle().Render(" " + joinOffsets(m.split.Offsets()))
	return lipgloss.NewStyle().Width(width).Render(ansi.Truncate(title+offsets, width, "…"))
}

func joinOffsets(offsets []ratio.Rational) string {
	parts := make([]string, len(offsets))
	for i, off := range offsets {
		parts[i] = off.String()
	}
	return strings.Join(parts, " ")
}

// renderPanes renders the ancestor columns, the current listing and the
// preview with the bars between them.
func (m Model) renderPanes(layout Layout) string {
	h := layout.Content.Height
	pieces := make([]string, 0, 2*len(layout.Panes))
	for i, pane := range layout.Panes {
		if i > 0 {
			pieces = append(pieces, m.renderBar(i-1, layout.Bars[i-1].Width, h))
		}

		var lines []string
		switch {
		case i == m.previewPane():
			lines = m.previewPaneLines()
		case i == m.currentPane():
			lines = m.currentLines(pane.Width, h)
		case i < len(m.ancestors):
			lines = m.ancestorLines(m.ancestors[i], pane.Width, h)
		}
		pieces = append(pieces, fitPane(lines, pane.Width, h))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pieces...)
}

// fitPane pads or clips lines to exactly width by height cells.
func fitPane(lines []string, width, height int) string {
	if width <= 0 {
		return strings.Repeat("\n", max(height-1, 0))
	}
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = ansi.Truncate(lines[i], width, "")
		}
		if pad := width - ansi.StringWidth(out[i]); pad > 0 {
			out[i] += strings.Repeat(" ", pad)
		}
	}
	return strings.Join(out, "\n")
}

// renderBar draws bar i. Solid splits use a full line and fixed ones a
// dashed line.
func (m Model) renderBar(i, width, height int) string {
	if width <= 0 {
		return ""
	}
	glyph := "│"
	if !m.split.Solid() {
		glyph = "┆"
	}
	active := i == m.dragging || (i == m.activeBar && m.split.Draggable())
	line := m.styles.BarStyle(active).Render(strings.Repeat(glyph, width))
	lines := make([]string, height)
	for j := range lines {
		lines[j] = line
	}
	return strings.Join(lines, "\n")
}

func (m Model) ancestorLines(col column, width, height int) []string {
	cursor := -1
	for i, e := range col.entries {
		if e.Name == col.trail {
			cursor = i
			break
		}
	}
	top := scrollTop(cursor, height)
	var lines []string
	for i := top; i < len(col.entries) && len(lines) < height; i++ {
		e := col.entries[i]
		if i == cursor {
			lines = append(lines, m.styles.TrailStyle().Width(width).Render(ansi.Truncate(" "+e.Display(), width, "…")))
			continue
		}
		lines = append(lines, ansi.Truncate(" "+m.entryStyle(e).Render(e.Display()), width, "…"))
	}
	return lines
}

func (m Model) currentLines(width, height int) []string {
	rows := m.rows()
	if len(rows) == 0 {
		msg := "(empty)"
		if m.query != "" {
			msg = "no matches"
		}
		return []string{m.styles.HelpStyle().Render(" " + msg)}
	}

	top := scrollTop(m.selected, height)
	var lines []string
	for i := top; i < len(rows) && len(lines) < height; i++ {
		r := rows[i]
		if i == m.selected {
			lines = append(lines, m.styles.SelectedStyle().Width(width).Render(ansi.Truncate(" "+r.entry.Display(), width, "…")))
			continue
		}
		lines = append(lines, ansi.Truncate(" "+m.renderName(r), width, "…"))
	}
	return lines
}

// renderName styles an entry name, underlining the bytes the filter matched.
func (m Model) renderName(r row) string {
	style := m.entryStyle(r.entry)
	if len(r.matched) == 0 {
		return style.Render(r.entry.Display())
	}

	matched := make(map[int]bool, len(r.matched))
	for _, i := range r.matched {
		matched[i] = true
	}
	name := r.entry.Name
	var sb strings.Builder
	for i, c := range name {
		if matched[i] {
			sb.WriteString(m.styles.MatchStyle().Render(string(c)))
		} else {
			sb.WriteString(style.Render(string(c)))
		}
	}
	sb.WriteString(style.Render(r.entry.Display()[len(name):]))
	return sb.String()
}

func (m Model) entryStyle(e browser.Entry) lipgloss.Style {
	switch {
	case e.Dir:
		return m.styles.DirStyle()
	case e.Link:
		return m.styles.LinkStyle()
	case e.Hidden():
		return m.styles.HiddenStyle()
	}
	return m.styles.FileStyle()
}

func (m Model) previewPaneLines() []string {
	if m.previewReady {
		return strings.Split(m.previewVP.View(), "\n")
	}
	return m.previewLines(0)
}

// previewLines renders the loaded preview, clipping lines to width when
// width is positive.
func (m Model) previewLines(width int) []string {
	p := m.preview
	var lines []string
	switch p.Kind {
	case browser.PreviewEmpty:
		if p.Path != "" {
			lines = []string{m.styles.HelpStyle().Render("(empty)")}
		}
	case browser.PreviewText, browser.PreviewBinary:
		lines = append(lines, p.Lines...)
		if p.Truncated {
			lines = append(lines, m.styles.HelpStyle().Render("… truncated"))
		}
	case browser.PreviewDir:
		if len(p.Entries) == 0 {
			lines = []string{m.styles.HelpStyle().Render("(empty)")}
		}
		for _, e := range p.Entries {
			lines = append(lines, m.entryStyle(e).Render(e.Display()))
		}
	case browser.PreviewError:
		lines = []string{m.styles.ErrorStyle().Render(p.Err.Error())}
	}

	if width > 0 {
		for i, l := range lines {
			lines[i] = ansi.Truncate(l, width, "")
		}
	}
	return lines
}

func (m *Model) updatePreviewContent() {
	if !m.previewReady {
		return
	}
	m.previewVP.SetContent(strings.Join(m.previewLines(m.previewVP.Width), "\n"))
}

func (m Model) renderFooter(width int) string {
	var text string
	if m.filtering {
		text = " " + m.filter.View()
	} else {
		text = fmt.Sprintf(" %s  %d items", m.state.Current, len(m.rows()))
		if m.state.ShowHidden {
			text += "  [hidden]"
		}
		if m.query != "" {
			text += "  /" + m.query
		}
	}
	return m.styles.FooterStyle().Width(width).Render(ansi.Truncate(text, width, "…"))
}

// renderStatusBar renders the status bar with operation feedback and help.
func (m Model) renderStatusBar(width int) string {
	var statusIcon string
	var messageStyle lipgloss.Style

	switch m.statusLevel {
	case StatusSuccess:
		statusIcon = m.styles.SuccessStyle().Render("✓")
		messageStyle = m.styles.SuccessStyle()
	case StatusError:
		statusIcon = m.styles.ErrorStyle().Render("✗")
		messageStyle = m.styles.ErrorStyle()
	default: // StatusInfo
		messageStyle = m.styles.InfoStatusStyle()
	}

	var statusText string
	if statusIcon != "" {
		statusText = statusIcon + " " + messageStyle.Render(m.statusMessage)
	} else if m.statusMessage != "" {
		statusText = messageStyle.Render(m.statusMessage)
	}

	if m.statusLevel == StatusError && m.err != nil {
		statusText += m.styles.HelpStyle().Render(" (esc to clear)")
	}

	var help string
	if !m.help.ShowAll {
		help = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	statusWidth := lipgloss.Width(statusText)
	helpWidth := lipgloss.Width(help)
	spacerWidth := width - statusWidth - helpWidth - 2 // 2 for padding
	if spacerWidth < 1 {
		spacerWidth = 1
	}

	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Bottom,
		statusText,
		strings.Repeat(" ", spacerWidth),
		help,
	), width, "")
}

// renderLogEntry formats a single log entry for display.
func (m Model) renderLogEntry(entry logging.LogEntry) string {
	ts := m.styles.LogTimestampStyle().Render(entry.Timestamp.Format("15:04:05"))

	var level string
	switch entry.Level {
	case "DEBUG":
		level = m.styles.LogDebugStyle().Render("DEBUG")
	case "INFO":
		level = m.styles.LogInfoStyle().Render("INFO")
	case "WARN":
		level = m.styles.LogWarnStyle().Render("WARN")
	case "ERROR":
		level = m.styles.LogErrorStyle().Render("ERROR")
	default:
		level = m.styles.LogInfoStyle().Render(entry.Level)
	}

	scope := m.styles.LogScopeStyle().Render("[" + entry.Scope + "]")

	return fmt.Sprintf("%s %s %s %s", ts, level, scope, entry.Message)
}

func (m Model) logLines() []string {
	lines := make([]string, 0, len(m.logEntries))
	for _, entry := range m.logEntries {
		lines = append(lines, m.renderLogEntry(entry))
	}
	if len(lines) == 0 {
		lines = []string{m.styles.InfoStyle().Render("No log entries")}
	}
	return lines
}

// renderLogPanel renders the log panel content.
func (m Model) renderLogPanel(layout Layout) string {
	header := m.styles.PanelHeaderFocusedStyle().
		Width(layout.Logs.Width).
		Render(fmt.Sprintf(" Logs (%d)", len(m.logEntries)))

	if m.logReady {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.logViewport.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().
			Width(layout.Logs.Width).
			Height(layout.Logs.Height-1).
			Render(strings.Join(m.logLines(), "\n")),
	)
}

func (m *Model) updateLogViewportContent() {
	m.logViewport.SetContent(strings.Join(m.logLines(), "\n"))
	m.logViewport.GotoBottom()
}
