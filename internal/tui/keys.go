package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Sidebar key.Binding
	Open    key.Binding
	Data    key.Binding
	Replay  key.Binding
	Legend  key.Binding
	Hide    key.Binding
	Help    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Sidebar: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sidebar")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Data:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "data")),
		Replay:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replay")),
		Legend: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "legend"),
		),
		Hide: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "hide tooltip")),
		Help: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sidebar, k.Open, k.Data, k.Replay, k.Legend, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sidebar, k.Open, k.Data},
		{k.Replay, k.Legend, k.Hide},
		{k.Help, k.Quit},
	}
}
