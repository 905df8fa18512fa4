package dashboard

import "github.com/charmbracelet/bubbles/key"

// Focus is the pane that receives navigation keys.
type Focus int

const (
	FocusBrowser Focus = iota
	FocusWidgets
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	if f == FocusWidgets {
		return "widgets"
	}
	return "browser"
}

// KeyMap holds the dashboard bindings. It implements help.KeyMap.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Focus    key.Binding
	Graph    key.Binding
	Tier1    key.Binding
	Tier2    key.Binding
	Tier3    key.Binding
	Close    key.Binding
	CloseAll key.Binding
	Snapshot key.Binding
	Collapse key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open/close"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Graph: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "card/graph"),
		),
		Tier1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "small"),
		),
		Tier2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "medium"),
		),
		Tier3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "large"),
		),
		Close: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "close widget"),
		),
		CloseAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "close all"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save svg"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "collapse"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Focus, k.Graph, k.Close, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Focus, k.Collapse},
		{k.Graph, k.Tier1, k.Tier2, k.Tier3},
		{k.Close, k.CloseAll, k.Snapshot, k.Help, k.Quit},
	}
}
