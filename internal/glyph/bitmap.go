package glyph

import (
	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

// Transpose swaps rows and columns. Ragged input is padded with zeros to
// the width of its first row.
func Transpose(m [][]int) [][]int {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil
	}
	rows, cols := len(m), len(m[0])
	out := make([][]int, cols)
	for c := range cols {
		out[c] = make([]int, rows)
		for r := range rows {
			if c < len(m[r]) {
				out[c][r] = m[r][c]
			}
		}
	}
	return out
}

// CustomBitmapToCells projects a week-major matrix (m[week][day]) onto the
// grid at startWeek. Values above 1 are used as commit counts; a value of 1
// takes intensity. Cells the grid rejects are dropped.
func CustomBitmapToCells(g grid.Grid, m [][]int, startWeek, intensity int) []pattern.Point {
	intensity = pattern.ClampIntensity(intensity)
	var out []pattern.Point
	for w, col := range m {
		for d, v := range col {
			if v <= 0 {
				continue
			}
			week := startWeek + w
			if !g.IsValidCell(week, d) {
				continue
			}
			commits := intensity
			if v > 1 {
				commits = v
			}
			out = append(out, pattern.Point{Week: week, Day: d, Commits: commits})
		}
	}
	return out
}
