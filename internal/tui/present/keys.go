package present

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/shahbajlive/deck/internal/presenter"
)

// KeyMap holds the application keys. Slide navigation lives in the
// presenter keymap and is only bound while a section is mounted.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Skip   key.Binding
	Help   key.Binding
	Quit   key.Binding

	Nav presenter.KeyMap
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "present")),
		Back:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "sections")),
		Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip animation")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Nav:    presenter.DefaultKeyMap(),
	}
}

// pickerKeys is the help view of the section picker.
type pickerKeys KeyMap

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

func (k pickerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Help, k.Quit}}
}

// slideKeys is the help view while presenting.
type slideKeys KeyMap

func (k slideKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Nav.Prev, k.Nav.Next, k.Back, k.Help}
}

func (k slideKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.Nav.ShortHelp(), {k.Skip, k.Back}, {k.Help, k.Quit}}
}
