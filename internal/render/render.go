// Package render draws previews of the contribution graph for plain
// terminals and exports them as PNG images.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
)

// Mode selects the cell glyphs.
type Mode string

const (
	ModeASCII Mode = "ascii"
	ModeEmoji Mode = "emoji"
	ModeColor Mode = "color"
)

// Modes lists every accepted mode.
var Modes = []Mode{ModeASCII, ModeEmoji, ModeColor}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == strings.ToLower(s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown preview mode %q (want ascii, emoji or color)", s)
}

const (
	// cellWidth is the display width of one week column, separator included.
	cellWidth   = 3
	labelPrefix = "Sun │ "
	fallbackTTY = 80
)

func dayLabel(row int) string { return grid.DayName(row)[:3] }

type glyphs struct {
	levels [5]string
	future string
}

var (
	asciiGlyphs = glyphs{levels: [5]string{"  ", "░░", "▒▒", "▓▓", "██"}, future: "××"}
	emojiGlyphs = glyphs{levels: [5]string{"⬜", "🟩", "🟢", "🟣", "🔵"}, future: "❌"}
	colorGlyphs = glyphs{levels: [5]string{"■", "■", "■", "■", "■"}, future: "×"}

	// GitHub-like greens (light -> dark), with the empty-day grey first.
	levelColors = [5]lipgloss.Color{"#6e7681", "#9be9a8", "#40c463", "#30a14e", "#216e39"}
	futureColor = lipgloss.Color("#f85149")
)

// Options controls Grid.
type Options struct {
	Mode  Mode
	Title string
	// MaxWidth compresses the grid to fit. Zero disables compression.
	MaxWidth int
	Legend   bool
}

// painter renders single cells for one mode and output.
type painter struct {
	g      glyphs
	levels [5]lipgloss.Style
	future lipgloss.Style
	color  bool
}

func newPainter(w io.Writer, mode Mode) painter {
	p := painter{}
	switch mode {
	case ModeEmoji:
		p.g = emojiGlyphs
	case ModeColor:
		p.g = colorGlyphs
		p.color = true
		r := lipgloss.NewRenderer(w)
		for i, c := range levelColors {
			p.levels[i] = r.NewStyle().Foreground(c)
		}
		p.future = r.NewStyle().Foreground(futureColor)
	default:
		p.g = asciiGlyphs
	}
	return p
}

// cell returns the glyph for c padded to the cell width.
func (p painter) cell(c mapping.Cell) string {
	if !c.Valid {
		return strings.Repeat(" ", cellWidth)
	}
	glyph, style := p.g.levels[c.Category], p.levels[c.Category]
	if c.Future && c.Count > 0 {
		glyph, style = p.g.future, p.future
	}
	// Pad before styling so escape codes do not count toward the width.
	glyph = runewidth.FillRight(glyph, cellWidth-1)
	if p.color {
		glyph = style.Render(glyph)
	}
	return glyph + " "
}

// Fit compresses p so that the grid with its labels fits into width columns.
func Fit(p mapping.Preview, width int) mapping.Preview {
	if width <= 0 {
		return p
	}
	cols := (width - runewidth.StringWidth(labelPrefix)) / cellWidth
	return mapping.Compress(p, max(cols, 1))
}

// TerminalWidth returns the width of f when it is a terminal, else 80.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackTTY
	}
	return width
}

// Grid writes the month header, seven weekday rows and optionally a legend.
func Grid(w io.Writer, p mapping.Preview, opts Options) error {
	if opts.MaxWidth > 0 {
		p = Fit(p, opts.MaxWidth)
	}
	pt := newPainter(w, opts.Mode)

	var b strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&b, "\n=== %s (%d) ===\n\n", opts.Title, p.Year)
	}
	b.WriteString(MonthLine(p))
	b.WriteByte('\n')
	for r := range p.Rows {
		b.WriteString(dayLabel(r))
		b.WriteString(" │ ")
		for c := range p.Cols {
			b.WriteString(pt.cell(p.Cells[r][c]))
		}
		b.WriteByte('\n')
	}
	if opts.Legend {
		b.WriteByte('\n')
		b.WriteString(legend(pt))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// MonthLine labels the column holding each month's first day.
func MonthLine(p mapping.Preview) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", runewidth.StringWidth(labelPrefix)))
	next := 0
	for col := range p.Cols {
		label := ""
		// Compressed previews may put two months in one column; the later wins.
		for next < len(p.Months) && p.Months[next].Week <= col {
			label = p.Months[next].Month.String()[:3]
			next++
		}
		b.WriteString(runewidth.FillRight(label, cellWidth))
	}
	return strings.TrimRight(b.String(), " ")
}

// Legend describes the glyphs of mode.
func Legend(mode Mode) string {
	return legend(newPainter(io.Discard, mode))
}

func legend(pt painter) string {
	labels := [5]string{"0", "1", "2", "3", "4+"}
	parts := make([]string, 0, 6)
	for i, l := range labels {
		c := mapping.Cell{Valid: true, Count: i, Category: mapping.Category(i)}
		parts = append(parts, pt.cell(c)+"= "+l)
	}
	future := pt.cell(mapping.Cell{Valid: true, Future: true, Count: 1})
	parts = append(parts, future+"= future date")
	return "Legend: " + strings.Join(parts, "  ")
}
