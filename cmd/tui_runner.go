package cmd

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fchimpan/gh-kusa-painter/internal/analysis"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
	"github.com/fchimpan/gh-kusa-painter/internal/tui"
)

func defaultRunPreview(title string, p mapping.Preview, confirmable bool) (bool, error) {
	m := tui.NewPreview(title, p, confirmable)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return false, err
	}
	return m.Confirmed(), nil
}

func defaultRunDashboard(login string, r analysis.Result, cal mapping.Preview, suggestions []analysis.Suggestion) error {
	p := tea.NewProgram(
		tui.NewDashboard(login, r, cal, suggestions),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
