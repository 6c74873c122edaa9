// pattern: Functional Core

package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the browser's key bindings. It implements help.KeyMap.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Parent     key.Binding
	Enter      key.Binding
	Home       key.Binding
	Hidden     key.Binding
	Filter     key.Binding
	PreviewUp  key.Binding
	PreviewDn  key.Binding
	NextBar    key.Binding
	Shrink     key.Binding
	Grow       key.Binding
	ResetSplit key.Binding
	Logs       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Parent:     key.NewBinding(key.WithKeys("left", "h", "backspace"), key.WithHelp("←/h", "parent")),
		Enter:      key.NewBinding(key.WithKeys("right", "l", "enter"), key.WithHelp("→/l", "open")),
		Home:       key.NewBinding(key.WithKeys("~"), key.WithHelp("~", "home")),
		Hidden:     key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		PreviewUp:  key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "preview up")),
		PreviewDn:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "preview down")),
		NextBar:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next bar")),
		Shrink:     key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "bar left")),
		Grow:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "bar right")),
		ResetSplit: key.NewBinding(key.WithKeys("="), key.WithHelp("=", "even split")),
		Logs:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logs")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Parent, k.Enter, k.Filter, k.Hidden, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Parent, k.Enter, k.Home, k.Hidden, k.Filter},
		{k.PreviewUp, k.PreviewDn, k.NextBar, k.Shrink, k.Grow, k.ResetSplit},
		{k.Logs, k.Help, k.Quit},
	}
}
