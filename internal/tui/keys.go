package tui

import "github.com/charmbracelet/bubbles/key"

type previewKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
	Skip    key.Binding
}

func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Skip}
}

func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newPreviewKeys(confirmable bool) previewKeys {
	k := previewKeys{
		Confirm: key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y/enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "q", "esc", "ctrl+c"), key.WithHelp("n/q", "cancel")),
		Skip:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "skip intro")),
	}
	if !confirmable {
		k.Confirm.SetEnabled(false)
		k.Cancel.SetHelp("q", "quit")
	}
	return k
}

type dashboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Tab  key.Binding
	Quit key.Binding
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Tab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "months/placements")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
