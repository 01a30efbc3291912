// Package tui holds the interactive bubbletea screens: the pattern preview
// with its confirm prompt and the contribution analysis dashboard.
package tui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
	"github.com/fchimpan/gh-kusa-painter/internal/render"
)

// PreviewModel shows a pattern on the year's grid and, when confirmable,
// asks whether to go ahead with writing the commits.
type PreviewModel struct {
	title       string
	full        mapping.Preview
	summary     render.Summary
	confirmable bool
	confirmed   bool

	keys previewKeys
	help help.Model

	lastTick time.Time

	ready bool
	w     int
	h     int
	shown mapping.Preview

	viewBuf bytes.Buffer

	// Startup intro animation: reveal grid columns from left to right.
	introActive      bool
	introTotalCols   int
	introVisibleCols int
	introAcc         float64 // seconds accumulated toward next column
	introStep        float64 // seconds per column
	introDone        bool    // only run once per launch
}

func NewPreview(title string, p mapping.Preview, confirmable bool) *PreviewModel {
	return &PreviewModel{
		title:       title,
		full:        p,
		summary:     render.Summarize(p),
		confirmable: confirmable,
		keys:        newPreviewKeys(confirmable),
		help:        help.New(),
	}
}

// Confirmed reports whether the user accepted the preview.
func (m *PreviewModel) Confirmed() bool { return m.confirmed }

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Second / 60
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *PreviewModel) Init() tea.Cmd {
	return tickCmd(time.Second / 60)
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if m.lastTick.IsZero() {
			m.lastTick = now
			return m, tickCmd(time.Second / 60)
		}
		// Clamp to avoid revealing everything at once after a stall.
		dt := min(max(now.Sub(m.lastTick).Seconds(), 0), 0.05)
		m.lastTick = now
		m.updateIntro(dt)
		if m.ready && !m.introActive {
			return m, nil
		}
		return m, tickCmd(time.Second / 60)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.confirmed = false
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			m.finishIntro()
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *PreviewModel) rebuild() {
	m.shown = render.Fit(m.full, m.w-2)
	m.ready = true
	if m.introDone {
		return
	}
	cols := m.shown.Cols
	if cols <= 0 {
		m.introDone = true
		return
	}
	// Target ~1.1s total, clamped per-column.
	m.introActive = true
	m.introTotalCols = cols
	m.introVisibleCols = 0
	m.introAcc = 0
	m.introStep = min(max(1.1/float64(cols), 0.01), 0.08)
}

func (m *PreviewModel) updateIntro(dt float64) {
	if !m.ready || !m.introActive {
		return
	}
	if m.introTotalCols <= 0 || m.introStep <= 0 {
		m.finishIntro()
		return
	}
	m.introAcc += dt
	for m.introAcc >= m.introStep && m.introVisibleCols < m.introTotalCols {
		m.introAcc -= m.introStep
		m.introVisibleCols++
	}
	if m.introVisibleCols >= m.introTotalCols {
		m.finishIntro()
	}
}

func (m *PreviewModel) finishIntro() {
	m.introActive = false
	m.introDone = true
	m.introVisibleCols = m.introTotalCols
}

func (m *PreviewModel) View() string {
	if !m.ready {
		return "loading...\n"
	}
	m.viewBuf.Reset()
	b := &m.viewBuf

	hud := renderPreviewHUD(m.title, m.full.Year, m.summary)
	info := ""
	switch {
	case m.introActive:
		info = "painting..."
	case m.summary.Days == 0:
		info = styleHudWarn.Render("the pattern is empty")
	case m.confirmable && m.summary.FutureCommits > 0:
		info = styleHudWarn.Render(fmt.Sprintf("%d future commits will be skipped. write the rest?", m.summary.FutureCommits))
	case m.confirmable:
		info = styleHudOk.Render(fmt.Sprintf("write %d commits?", m.summary.ValidCommits))
	}

	visible := -1
	if m.introActive {
		visible = m.introVisibleCols
	}
	body := gridView(m.shown, visible)

	content := []string{hud, info, body, m.help.View(m.keys)}
	contentW := 0
	for _, c := range content {
		contentW = max(contentW, lipgloss.Width(c))
	}
	contentH := 0
	for _, c := range content {
		contentH += lipgloss.Height(c)
	}
	leftPad := ""
	if m.w > contentW {
		leftPad = strings.Repeat(" ", (m.w-contentW)/2)
	}
	if m.h > contentH {
		b.WriteString(strings.Repeat("\n", (m.h-contentH)/2))
	}
	for _, c := range content {
		for _, line := range strings.Split(c, "\n") {
			b.WriteString(leftPad)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderPreviewHUD(title string, year int, s render.Summary) string {
	sep := styleHudDim.Render("  |  ")
	parts := []string{
		styleTitle.Render(title) + styleHudDim.Render(fmt.Sprintf(" (%d)", year)),
		sep,
		styleHudLabel.Render("days ") + styleHudValue.Render(fmt.Sprintf("%d", s.Days)),
		sep,
		styleHudLabel.Render("commits ") + styleHudValue.Render(fmt.Sprintf("%d", s.Commits)),
		sep,
		styleHudLabel.Render("avg ") + styleHudValue.Render(fmt.Sprintf("%.2f", s.Average)),
	}
	if s.FutureCommits > 0 {
		parts = append(parts, sep, styleHudLabel.Render("future ")+styleHudWarn.Render(fmt.Sprintf("%d", s.FutureCommits)))
	}
	return strings.Join(parts, "")
}

// gridView draws month labels and seven weekday rows with two-column cells.
// visibleCols < 0 shows every column.
func gridView(p mapping.Preview, visibleCols int) string {
	if visibleCols >= p.Cols {
		visibleCols = -1
	}
	var b strings.Builder
	b.WriteString("    ")
	next := 0
	for col := range p.Cols {
		label := "  "
		for next < len(p.Months) && p.Months[next].Week <= col {
			// Month names take three columns; keep only the first two letters
			// to stay aligned with two-column cells.
			label = p.Months[next].Month.String()[:2]
			next++
		}
		b.WriteString(label)
	}
	b.WriteByte('\n')
	for r := range p.Rows {
		label := "   "
		if r%2 == 1 {
			label = grid.DayName(r)[:3]
		}
		b.WriteString(styleHudDim.Render(label))
		b.WriteByte(' ')
		for c := range p.Cols {
			cell := p.Cells[r][c]
			switch {
			case visibleCols >= 0 && c >= visibleCols, !cell.Valid:
				b.WriteString("  ")
			case cell.Future && cell.Count > 0:
				b.WriteString(futureSpan2)
			default:
				b.WriteString(levelSpan(int(cell.Category)))
			}
		}
		if r < p.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
