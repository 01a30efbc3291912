// Package grid maps calendar dates of a single year onto GitHub's
// contribution graph: 7 rows (weekday 0=Sunday..6=Saturday) by N week columns.
package grid

import (
	"errors"
	"fmt"
	"time"
)

// Rows is the number of weekday rows in the contribution graph.
const Rows = 7

// Grid is the immutable geometry of one year's contribution graph.
// Week 0 is the (possibly partial) week containing January 1st.
type Grid struct {
	year        int
	first       time.Time
	startOffset int
	totalDays   int
	totalWeeks  int
}

// Dimensions summarizes a grid's shape.
type Dimensions struct {
	Rows        int
	Cols        int
	StartOffset int
	TotalCells  int
	FilledCells int
}

// Position is the result of resolving a date onto the grid.
type Position struct {
	Week  int
	Day   int
	Valid bool
}

// Cell is one entry of YearGrid. Date is the zero time when Valid is false.
type Cell struct {
	Week  int
	Day   int
	Date  time.Time
	Valid bool
}

// MonthBoundary is the grid position of the first day of a month.
type MonthBoundary struct {
	Month time.Month
	Week  int
	Day   int
}

// Space is the room left on the grid from a given week to its end.
type Space struct {
	Weeks int
	Cells int
}

// DateOutOfYearError is returned by DateToCell for dates outside the grid's year.
type DateOutOfYearError struct {
	Date time.Time
	Year int
}

func (e *DateOutOfYearError) Error() string {
	return fmt.Sprintf("date %s must be in year %d", e.Date.Format(time.DateOnly), e.Year)
}

func IsDateOutOfYear(err error) bool {
	var e *DateOutOfYearError
	return errors.As(err, &e)
}

// New builds the grid geometry for year. All dates are UTC midnights.
func New(year int) Grid {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	totalDays := int(next.Sub(first).Hours() / 24)
	startOffset := int(first.Weekday())
	return Grid{
		year:        year,
		first:       first,
		startOffset: startOffset,
		totalDays:   totalDays,
		totalWeeks:  (totalDays + startOffset + 6) / 7,
	}
}

func (g Grid) Year() int        { return g.year }
func (g Grid) StartOffset() int { return g.startOffset }
func (g Grid) TotalDays() int   { return g.totalDays }
func (g Grid) TotalWeeks() int  { return g.totalWeeks }

// FirstDay returns January 1st of the grid's year.
func (g Grid) FirstDay() time.Time { return g.first }

// LastDay returns December 31st of the grid's year.
func (g Grid) LastDay() time.Time { return g.first.AddDate(0, 0, g.totalDays-1) }

func (g Grid) Dimensions() Dimensions {
	return Dimensions{
		Rows:        Rows,
		Cols:        g.totalWeeks,
		StartOffset: g.startOffset,
		TotalCells:  Rows * g.totalWeeks,
		FilledCells: g.totalDays,
	}
}

// DateToCell resolves a date to its (week, day) position.
// The date's own calendar day is used, regardless of its location.
func (g Grid) DateToCell(date time.Time) (Position, error) {
	if date.Year() != g.year {
		return Position{}, &DateOutOfYearError{Date: date, Year: g.year}
	}
	offset := date.YearDay() - 1 + g.startOffset
	week := offset / Rows
	day := offset % Rows
	return Position{Week: week, Day: day, Valid: g.IsValidCell(week, day)}, nil
}

// CellToDate resolves (week, day) to a date. ok is false when the cell falls
// before January 1st or after December 31st.
func (g Grid) CellToDate(week, day int) (time.Time, bool) {
	if day < 0 || day >= Rows {
		return time.Time{}, false
	}
	n := week*Rows + day - g.startOffset
	if n < 0 || n >= g.totalDays {
		return time.Time{}, false
	}
	return g.first.AddDate(0, 0, n), true
}

// WeekDayToDate resolves (week, day) by anchoring on the first Sunday on or
// after January 1st instead of on the start offset. It agrees with CellToDate
// on every valid cell.
func (g Grid) WeekDayToDate(week, day int) (time.Time, bool) {
	if day < 0 || day >= Rows {
		return time.Time{}, false
	}
	shift := (Rows - g.startOffset) % Rows
	anchor := g.first.AddDate(0, 0, shift)
	// The anchor Sunday opens week 0 when January 1st is a Sunday, week 1 otherwise.
	anchorWeek := 1
	if shift == 0 {
		anchorWeek = 0
	}
	date := anchor.AddDate(0, 0, (week-anchorWeek)*Rows+day)
	if date.Year() != g.year {
		return time.Time{}, false
	}
	return date, true
}

// IsValidCell reports whether (week, day) corresponds to a day of the year.
func (g Grid) IsValidCell(week, day int) bool {
	if week < 0 || week >= g.totalWeeks {
		return false
	}
	if day < 0 || day >= Rows {
		return false
	}
	if week == 0 && day < g.startOffset {
		return false
	}
	date, ok := g.CellToDate(week, day)
	if !ok {
		return false
	}
	return date.Year() == g.year && !date.After(g.LastDay())
}

// YearGrid returns every cell of the grid, indexed [week][day].
func (g Grid) YearGrid() [][]Cell {
	out := make([][]Cell, g.totalWeeks)
	for week := range g.totalWeeks {
		col := make([]Cell, Rows)
		for day := range Rows {
			c := Cell{Week: week, Day: day}
			if g.IsValidCell(week, day) {
				c.Date, _ = g.CellToDate(week, day)
				c.Valid = true
			}
			col[day] = c
		}
		out[week] = col
	}
	return out
}

// MonthBoundaries returns the position of the first day of each month.
func (g Grid) MonthBoundaries() []MonthBoundary {
	out := make([]MonthBoundary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		// Cannot fail: the date is always inside the grid's year.
		pos, _ := g.DateToCell(time.Date(g.year, m, 1, 0, 0, 0, 0, time.UTC))
		out = append(out, MonthBoundary{Month: m, Week: pos.Week, Day: pos.Day})
	}
	return out
}

// AvailableSpace returns the weeks and cells left from fromWeek to the end
// of the grid. Negative when fromWeek is past the last column.
func (g Grid) AvailableSpace(fromWeek int) Space {
	weeks := g.totalWeeks - fromWeek
	return Space{Weeks: weeks, Cells: weeks * Rows}
}

var dayNames = [Rows]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the English weekday name for a row index, or "" when out of range.
func DayName(day int) string {
	if day < 0 || day >= Rows {
		return ""
	}
	return dayNames[day]
}
