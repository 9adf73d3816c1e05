package presenter

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shahbajlive/deck/internal/input"
)

// Actions are the navigation actions a key binding drives.
type Actions interface {
	GoNext()
	GoPrev()
}

// KeyMap defines the presenter keybindings.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
}

// DefaultKeyMap binds the arrow keys only.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Prev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// BindKeys registers a on hub for as long as the returned release has not
// been called. Keys outside km pass through unhandled.
func BindKeys(hub *input.Hub, a Actions, km KeyMap) (release func()) {
	return hub.Register(func(msg tea.KeyMsg) bool {
		switch {
		case key.Matches(msg, km.Next):
			a.GoNext()
			return true
		case key.Matches(msg, km.Prev):
			a.GoPrev()
			return true
		default:
			return false
		}
	})
}
