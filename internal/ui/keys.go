package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the pager bindings. Up and Down are handled by the viewport's
// own key map, as is page scrolling (pgup/pgdown, b/f, space).
type KeyMap struct {
	Quit key.Binding
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding
}

var Keys = KeyMap{
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "up")),
	Down: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "down")),
	Home: key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	End:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
}

// ShortHelp is shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Home, k.End, k.Quit}
}
