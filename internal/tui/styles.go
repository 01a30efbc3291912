package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleHudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleHudValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleHudWarn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd33d"))
	styleHudOk    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ee787"))
	styleHudDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ee787"))

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(0, 1)

	// GitHub-like greens (light -> dark):
	// 1: #9be9a8, 2: #40c463, 3: #30a14e, 4: #216e39
	levelSpan2 = [5]string{
		lipgloss.NewStyle().Background(lipgloss.Color("#161b22")).Render("  "),
		lipgloss.NewStyle().Background(lipgloss.Color("#9be9a8")).Render("  "),
		lipgloss.NewStyle().Background(lipgloss.Color("#40c463")).Render("  "),
		lipgloss.NewStyle().Background(lipgloss.Color("#30a14e")).Render("  "),
		lipgloss.NewStyle().Background(lipgloss.Color("#216e39")).Render("  "),
	}
	futureSpan2 = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")).Render("××")
)

func levelSpan(level int) string {
	if level <= 0 {
		return levelSpan2[0]
	}
	if level > 4 {
		level = 4
	}
	return levelSpan2[level]
}
