package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the dashboard. Vim keys move the
// selection, bracket keys cycle detail tabs, and r/R refresh with and
// without the caches.
type KeyMap struct {
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	Detail       key.Binding
	Back         key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	Refresh      key.Binding
	ForceRefresh key.Binding
	Open         key.Binding
	Help         key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("tab", "enter"),
			key.WithHelp("tab/enter", "focus detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ForceRefresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh, bypass cache"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open on GitHub"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
