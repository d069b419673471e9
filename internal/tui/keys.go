package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPane    key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	AddRow      key.Binding
	DeleteRow   key.Binding
	NextElement key.Binding
	Edit        key.Binding
	Save        key.Binding
	Load        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextPane:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch table")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		AddRow:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add row")),
		DeleteRow:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete row")),
		NextElement: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "next element")),
		Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Load:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.AddRow, k.DeleteRow, k.NextElement, k.Edit, k.Save, k.Load, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextPane, k.AddRow, k.DeleteRow, k.NextElement},
		{k.Edit, k.Save, k.Load, k.Quit},
	}
}
