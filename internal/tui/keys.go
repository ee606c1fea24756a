package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Open   key.Binding
	Delete key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

// Plain letters are left to the search input, so every binding uses a
// control chord or a non-printing key.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑/↓", "navigate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "ctrl+o"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+r", "ctrl+x"),
			key.WithHelp("del/ctrl+x", "remove"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy path"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+q", "ctrl+c"),
			key.WithHelp("esc/ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Delete, k.Open, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Open, k.Delete, k.Copy, k.Quit},
	}
}
