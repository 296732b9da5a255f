package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding

	// Page number entry.
	Digit   key.Binding
	Confirm key.Binding
	Erase   key.Binding
	Cancel  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("→/n", "next page")),
		Prev:   key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("←/p", "previous page")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle type")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),

		Digit:   key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9 enter", "go to page")),
		Confirm: key.NewBinding(key.WithKeys("enter")),
		Erase:   key.NewBinding(key.WithKeys("backspace")),
		Cancel:  key.NewBinding(key.WithKeys("esc")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Digit, k.Up, k.Down, k.Toggle, k.Quit}
}
