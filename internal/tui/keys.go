package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Filter   key.Binding
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Generate key.Binding
	Confirm  key.Binding
	Deny     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space", "toggle")),
		Filter:   key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab", "filter")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "cycle")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "cycle")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Generate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate sub-tasks")),
		Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Deny:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Toggle, k.Filter, k.Quit}
}

func (k keyMap) formHelp(adding bool) []key.Binding {
	help := []key.Binding{k.Next, k.Left, k.Submit, k.Cancel}
	if adding {
		help = append(help, k.Generate)
	}
	return help
}
