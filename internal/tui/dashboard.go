package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/gh-kusa-painter/internal/analysis"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
	"github.com/fchimpan/gh-kusa-painter/internal/render"
)

// DashboardModel presents the analysis of one year: the calendar heatmap,
// headline numbers, a month table and the placement suggestions.
type DashboardModel struct {
	login       string
	result      analysis.Result
	calendar    mapping.Preview
	suggestions []analysis.Suggestion

	months     table.Model
	placements table.Model
	// focus is 0 for months, 1 for placements.
	focus int

	keys dashboardKeys
	help help.Model

	ready bool
	w     int
	h     int
}

func NewDashboard(login string, r analysis.Result, calendar mapping.Preview, suggestions []analysis.Suggestion) *DashboardModel {
	m := &DashboardModel{
		login:       login,
		result:      r,
		calendar:    calendar,
		suggestions: suggestions,
		keys:        newDashboardKeys(),
		help:        help.New(),
	}
	m.months = buildMonthTable(analysis.MonthlyTrend(r))
	m.placements = buildPlacementTable(suggestions)
	m.months.Focus()
	return m
}

func (m *DashboardModel) Init() tea.Cmd { return nil }

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		height := max(msg.Height-20, 4)
		m.months.SetHeight(height)
		m.placements.SetHeight(height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.months.Focus()
				m.placements.Blur()
			} else {
				m.placements.Focus()
				m.months.Blur()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.months, cmd = m.months.Update(msg)
	} else {
		m.placements, cmd = m.placements.Update(msg)
	}
	return m, cmd
}

func (m *DashboardModel) View() string {
	if !m.ready {
		return "loading...\n"
	}
	r := m.result
	sep := styleHudDim.Render("  |  ")
	head := strings.Join([]string{
		styleTitle.Render(m.login) + styleHudDim.Render(fmt.Sprintf(" (%d)", r.Year)),
		sep,
		styleHudLabel.Render("total ") + styleHudValue.Render(fmt.Sprintf("%d", r.TotalContributions)),
		sep,
		styleHudLabel.Render("fill ") + styleHudValue.Render(fmt.Sprintf("%.1f%%", r.FillRate)),
		sep,
		styleHudLabel.Render("streak ") + styleHudValue.Render(fmt.Sprintf("%d/%d", r.CurrentStreak, r.MaxStreak)),
	}, "")
	busiest := styleHudLabel.Render("busiest day ") + styleHudValue.Render(fmt.Sprintf("%s (%d)", r.BusiestDay, r.BusiestDayCount)) +
		sep + styleHudLabel.Render("empty weeks ") + styleHudValue.Render(fmt.Sprintf("%d", len(r.EmptyWeeks))) +
		sep + styleHudLabel.Render("longest gap ") + styleHudValue.Render(fmt.Sprintf("%d weeks", r.LongestEmptyStreak))

	heat := gridView(render.Fit(m.calendar, m.w-2), -1)

	monthsPanel := stylePanel.Render(m.months.View())
	placementsPanel := stylePanel.Render(m.placements.View())
	if m.focus == 0 {
		monthsPanel = stylePanel.BorderForeground(lipgloss.Color("#7ee787")).Render(m.months.View())
	} else {
		placementsPanel = stylePanel.BorderForeground(lipgloss.Color("#7ee787")).Render(m.placements.View())
	}
	tables := lipgloss.JoinHorizontal(lipgloss.Top, monthsPanel, " ", placementsPanel)

	return lipgloss.JoinVertical(lipgloss.Left, head, busiest, "", heat, "", tables, m.help.View(m.keys)) + "\n"
}

func buildMonthTable(trends []analysis.Trend) table.Model {
	columns := []table.Column{
		{Title: "Month", Width: 10},
		{Title: "Contrib", Width: 8},
		{Title: "Active", Width: 7},
		{Title: "Per day", Width: 8},
	}
	rows := make([]table.Row, 0, len(trends))
	for _, t := range trends {
		rows = append(rows, table.Row{
			t.Month,
			fmt.Sprintf("%d", t.Contributions),
			fmt.Sprintf("%d", t.ActiveDays),
			fmt.Sprintf("%.1f", t.Intensity),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())
	return t
}

func buildPlacementTable(suggestions []analysis.Suggestion) table.Model {
	columns := []table.Column{
		{Title: "Kind", Width: 8},
		{Title: "Weeks", Width: 8},
		{Title: "Suggestion", Width: 52},
	}
	rows := make([]table.Row, 0, len(suggestions))
	for _, s := range suggestions {
		weeks := "-"
		if s.Kind == analysis.KindText || s.Kind == analysis.KindShape {
			weeks = fmt.Sprintf("%d-%d", s.StartWeek, s.EndWeek)
		}
		rows = append(rows, table.Row{string(s.Kind), weeks, s.Message})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#30363d")).
		Foreground(lipgloss.Color("#8b949e")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#0d1117")).
		Background(lipgloss.Color("#7ee787")).
		Bold(false)
	return styles
}
