// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Back      key.Binding
	Search    key.Binding
	Up        key.Binding
	Down      key.Binding
	NewSearch key.Binding

	// Domain cycles the domain filter applied to the next search.
	Domain key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n", "/"),
			key.WithHelp("n", "new search"),
		),
		Domain: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "domain"),
		),
	}
}

// ShortHelp returns the bindings shown while typing a query.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Domain, k.Quit}
}

// ResultsHelp returns the bindings shown while browsing results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Down, k.Domain, k.Help}
}

// FullHelp returns every binding grouped for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NewSearch},
		{k.Search, k.Domain, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
