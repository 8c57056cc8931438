package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Services key.Binding
	Invoice  key.Binding
	Billing  key.Binding
	Notes    key.Binding
	Report   key.Binding
	Preview  key.Binding
	Theme    key.Binding

	// Actions
	Select  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Confirm key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Services: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "services")),
	Invoice:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoice")),
	Billing:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "billing")),
	Notes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
	Report:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
	Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Confirm:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "confirm")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
}
