package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	stop   key.Binding
	backup key.Binding
	retry  key.Binding
	enter  key.Binding
	quit   key.Binding
}

var defaultKeymap = keymap{
	stop: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "end collection"),
	),
	backup: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "save backup"),
	),
	retry: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "retry upload"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
