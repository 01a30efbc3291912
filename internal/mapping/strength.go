package mapping

import (
	"math"
	"time"

	"github.com/fchimpan/gh-kusa-painter/internal/github"
	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

// Category is the shade bucket of a day, as drawn by GitHub.
type Category int

const (
	None Category = iota
	Light
	Medium
	Heavy
	Full
)

var categoryNames = [...]string{"none", "light", "medium", "heavy", "full"}

func (c Category) String() string {
	if c < None || c > Full {
		return "unknown"
	}
	return categoryNames[c]
}

// CategoryFromCount buckets a raw commit count: 0 none, 1 light, 2 medium,
// 3 heavy, 4 or more full.
func CategoryFromCount(count int) Category {
	switch {
	case count <= 0:
		return None
	case count >= int(Full):
		return Full
	default:
		return Category(count)
	}
}

// LevelFromCount scales count against the busiest day into 0..4, so that
// calendars with large counts still use every shade.
func LevelFromCount(count, maxCount int) Category {
	if count <= 0 {
		return None
	}
	if maxCount <= 0 {
		return Light
	}
	level := int(math.Ceil(4.0 * float64(count) / float64(maxCount)))
	return Category(min(max(level, 1), int(Full)))
}

type Cell struct {
	Count    int
	Category Category
	// Valid is false for padding before January 1st and after December 31st.
	Valid bool
	// Future marks valid days after the reference time given to FromPoints.
	Future bool
	Date   time.Time
}

// Preview is a 7(row: weekday 0..6) x N(col: week) grid ready for drawing.
// Rows correspond to GitHub's weekday numbering (0=Sunday..6=Saturday).
type Preview struct {
	Year     int
	Rows     int
	Cols     int
	MaxCount int
	Cells    [][]Cell // [row][col]
	// Months holds the column of each month's first day.
	Months []grid.MonthBoundary
}

func newPreview(g grid.Grid) Preview {
	cols := g.TotalWeeks()
	cells := make([][]Cell, grid.Rows)
	for r := range grid.Rows {
		cells[r] = make([]Cell, cols)
	}
	for week, col := range g.YearGrid() {
		for _, c := range col {
			cells[c.Day][week] = Cell{Valid: c.Valid, Date: c.Date}
		}
	}
	return Preview{Year: g.Year(), Rows: grid.Rows, Cols: cols, Cells: cells, Months: g.MonthBoundaries()}
}

// FromPoints projects a pattern onto the year's grid. Points on invalid
// cells are ignored. When now is non-zero, days after it are marked Future.
func FromPoints(g grid.Grid, points []pattern.Point, now time.Time) Preview {
	p := newPreview(g)
	for _, pt := range pattern.Merge(points) {
		if !g.IsValidCell(pt.Week, pt.Day) {
			continue
		}
		c := &p.Cells[pt.Day][pt.Week]
		c.Count = pt.Commits
		c.Category = CategoryFromCount(pt.Commits)
		p.MaxCount = max(p.MaxCount, pt.Commits)
	}
	if !now.IsZero() {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		for r := range p.Rows {
			for c := range p.Cols {
				cell := &p.Cells[r][c]
				cell.Future = cell.Valid && cell.Date.After(today)
			}
		}
	}
	return p
}

// FromCalendar places each calendar day by its date, so the result lines
// up with FromPoints for the same year. Days outside the year are skipped.
// Categories are relative to the busiest day.
func FromCalendar(g grid.Grid, cal github.Calendar) Preview {
	p := newPreview(g)
	for _, w := range cal.Weeks {
		for _, d := range w.ContributionDays {
			date, err := time.Parse(time.DateOnly, d.Date)
			if err != nil {
				continue
			}
			pos, err := g.DateToCell(date)
			if err != nil || !pos.Valid {
				continue
			}
			p.Cells[pos.Day][pos.Week].Count = d.ContributionCount
			p.MaxCount = max(p.MaxCount, d.ContributionCount)
		}
	}
	for r := range p.Rows {
		for c := range p.Cols {
			p.Cells[r][c].Category = LevelFromCount(p.Cells[r][c].Count, p.MaxCount)
		}
	}
	return p
}

// Overlay draws a pattern on top of a calendar preview: a cell's count
// becomes the higher of the two. Categories follow the pattern's scale and
// days after now are marked Future as in FromPoints.
func Overlay(base Preview, g grid.Grid, points []pattern.Point, now time.Time) Preview {
	top := FromPoints(g, points, now)
	out := newPreview(g)
	for r := range out.Rows {
		for c := range out.Cols {
			cell := &out.Cells[r][c]
			count := max(base.Cells[r][c].Count, top.Cells[r][c].Count)
			cell.Count = count
			cell.Category = CategoryFromCount(count)
			cell.Future = top.Cells[r][c].Future
			out.MaxCount = max(out.MaxCount, count)
		}
	}
	return out
}

// Compress narrows a preview to at most maxCols columns for small
// terminals, grouping neighbouring weeks and keeping the per-weekday MAX
// count of each group. Month columns are rescaled.
func Compress(p Preview, maxCols int) Preview {
	if maxCols <= 0 {
		maxCols = 1
	}
	if p.Cols <= maxCols {
		return p
	}
	cols := maxCols
	cells := make([][]Cell, p.Rows)
	for r := range p.Rows {
		cells[r] = make([]Cell, cols)
	}

	// Evenly distribute week indices into [0..cols-1].
	for r := range p.Rows {
		for wi := range p.Cols {
			col := (wi * cols) / p.Cols
			src := p.Cells[r][wi]
			dst := &cells[r][col]
			if src.Valid && !dst.Valid {
				dst.Valid = true
				dst.Date = src.Date
			}
			dst.Future = dst.Future || src.Future
			if src.Count > dst.Count || (src.Count == dst.Count && src.Category > dst.Category) {
				dst.Count = src.Count
				dst.Category = src.Category
			}
		}
	}

	months := make([]grid.MonthBoundary, len(p.Months))
	for i, m := range p.Months {
		m.Week = (m.Week * cols) / p.Cols
		months[i] = m
	}

	return Preview{
		Year:     p.Year,
		Rows:     p.Rows,
		Cols:     cols,
		MaxCount: p.MaxCount,
		Cells:    cells,
		Months:   months,
	}
}
