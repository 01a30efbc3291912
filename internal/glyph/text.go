// Package glyph rasterizes text and fixed shape bitmaps onto a year's
// contribution grid.
package glyph

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

// Glyph metrics, in grid cells.
const (
	Width   = 5
	Height  = grid.Rows
	Spacing = 1
	// Advance is the number of weeks one character occupies including the gap after it.
	Advance = Width + Spacing
)

// TextTooLongError is returned when text does not fit between its start
// week and the end of the grid.
type TextTooLongError struct {
	Text      string
	Required  int
	Available int
	StartWeek int
}

func (e *TextTooLongError) Error() string {
	return fmt.Sprintf("text %q requires %d weeks but only %d weeks available from week %d",
		e.Text, e.Required, e.Available, e.StartWeek)
}

func IsTextTooLong(err error) bool {
	var e *TextTooLongError
	return errors.As(err, &e)
}

var upper = cases.Upper(language.Und)

// Normalize upper-cases text the way the rasterizer sees it.
func Normalize(text string) string {
	return upper.String(text)
}

// WeeksNeeded returns the columns text occupies: Width per supported
// character plus Spacing between consecutive ones.
func WeeksNeeded(text string) int {
	n := 0
	for _, r := range Normalize(text) {
		if Supported(r) {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return n*Width + (n-1)*Spacing
}

// TextToCells lays text out left to right starting at startWeek. Cells the
// grid rejects are clipped but still advance the cursor. Unsupported
// characters are skipped and reported in the returned warnings.
func TextToCells(g grid.Grid, text string, startWeek, intensity int) ([]pattern.Point, []string) {
	intensity = pattern.ClampIntensity(intensity)
	var (
		points   []pattern.Point
		warnings []string
	)
	week := startWeek
	for _, r := range Normalize(text) {
		bm, ok := Letter(r)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("character %q is not supported, skipping", r))
			continue
		}
		for row := range Height {
			for col := range Width {
				if bm[row][col] == 0 {
					continue
				}
				if !g.IsValidCell(week+col, row) {
					continue
				}
				points = append(points, pattern.Point{Week: week + col, Day: row, Commits: intensity})
			}
		}
		week += Advance
	}
	return points, warnings
}

// TextToCellsValidated is TextToCells guarded by a check that the whole
// text fits in the space left after startWeek.
func TextToCellsValidated(g grid.Grid, text string, startWeek, intensity int) ([]pattern.Point, []string, error) {
	required := WeeksNeeded(text)
	available := g.AvailableSpace(startWeek).Weeks
	if required > available {
		return nil, nil, &TextTooLongError{Text: text, Required: required, Available: available, StartWeek: startWeek}
	}
	points, warnings := TextToCells(g, text, startWeek, intensity)
	return points, warnings, nil
}

// TextOptions configures Text.
type TextOptions struct {
	StartWeek int
	Intensity int
	Effects   pattern.Effects
	// Strict rejects text that does not fit instead of clipping it.
	Strict bool
}

// Text rasterizes text and applies the selected effects. Shadow cells the
// grid rejects are dropped.
func Text(g grid.Grid, text string, opts TextOptions) ([]pattern.Point, []string, error) {
	var (
		points   []pattern.Point
		warnings []string
	)
	if opts.Strict {
		var err error
		points, warnings, err = TextToCellsValidated(g, text, opts.StartWeek, opts.Intensity)
		if err != nil {
			return nil, nil, err
		}
	} else {
		points, warnings = TextToCells(g, text, opts.StartWeek, opts.Intensity)
	}
	return opts.Effects.Apply(points, g.IsValidCell), warnings, nil
}

// MultiLine places lines one after another along the weeks axis, leaving
// lineSpacing empty weeks between them.
func MultiLine(g grid.Grid, lines []string, startWeek, lineSpacing, intensity int) ([]pattern.Point, []string) {
	var (
		points   []pattern.Point
		warnings []string
	)
	week := startWeek
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, w := TextToCells(g, line, week, intensity)
		points = append(points, p...)
		warnings = append(warnings, w...)
		week += WeeksNeeded(line) + lineSpacing
	}
	return points, warnings
}
