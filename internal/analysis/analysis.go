// Package analysis computes statistics over a finished contribution
// calendar and derives where new patterns would fit.
package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/fchimpan/gh-kusa-painter/internal/github"
	"github.com/fchimpan/gh-kusa-painter/internal/grid"
)

// WeekSummary is one column of the analyzed calendar. Index is 1-based.
type WeekSummary struct {
	Index int
	Total int
	Empty bool
}

// Month aggregates the days of one calendar month.
type Month struct {
	Name          string
	Contributions int
	ActiveDays    int
	TotalDays     int
}

// Result is a read-only snapshot of one user's year.
type Result struct {
	Year               int
	TotalContributions int
	Weeks              []WeekSummary
	// EmptyWeeks holds the 1-based indices of weeks without any contribution, ascending.
	EmptyWeeks           []int
	EmptyDays            int
	ActiveDays           int
	TotalDays            int
	BusiestDay           string
	BusiestDayCount      int
	AverageContributions float64
	FillRate             float64
	// LongestEmptyStreak is in whole weeks (the longest run of empty days, divided by 7).
	LongestEmptyStreak int
	CurrentStreak      int
	MaxStreak          int
	// DayDistribution sums contribution counts per weekday, Sunday first.
	DayDistribution [grid.Rows]int
	// Months are in calendar order of first appearance.
	Months []Month
}

// MalformedCalendarError reports the first unusable day of a calendar.
// Week and Day are -1 when the problem is the calendar as a whole.
type MalformedCalendarError struct {
	Week   int
	Day    int
	Reason string
}

func (e *MalformedCalendarError) Error() string {
	if e.Week < 0 {
		return "malformed calendar: " + e.Reason
	}
	return fmt.Sprintf("malformed calendar at week %d day %d: %s", e.Week, e.Day, e.Reason)
}

// Analyze walks cal in order and summarizes it. Nothing is returned when
// any day is malformed.
func Analyze(cal github.Calendar, year int) (Result, error) {
	r := Result{Year: year}
	monthIndex := map[time.Month]int{}
	currentEmpty, longestEmpty, currentActive := 0, 0, 0

	for wi, week := range cal.Weeks {
		ws := WeekSummary{Index: wi + 1, Empty: true}
		for di, day := range week.ContributionDays {
			date, err := time.Parse(time.DateOnly, day.Date)
			if err != nil {
				return Result{}, &MalformedCalendarError{Week: wi, Day: di, Reason: fmt.Sprintf("invalid date %q", day.Date)}
			}
			if date.Year() != year {
				return Result{}, &MalformedCalendarError{Week: wi, Day: di, Reason: fmt.Sprintf("date %s is outside %d", day.Date, year)}
			}
			if day.Weekday < 0 || day.Weekday >= grid.Rows {
				return Result{}, &MalformedCalendarError{Week: wi, Day: di, Reason: fmt.Sprintf("weekday %d out of range", day.Weekday)}
			}
			count := day.ContributionCount
			if count < 0 {
				return Result{}, &MalformedCalendarError{Week: wi, Day: di, Reason: fmt.Sprintf("negative count %d", count)}
			}

			r.TotalDays++
			r.TotalContributions += count
			ws.Total += count

			if count > 0 {
				r.ActiveDays++
				ws.Empty = false
				r.DayDistribution[day.Weekday] += count
				if count > r.BusiestDayCount {
					r.BusiestDayCount = count
					r.BusiestDay = day.Date
				}
				currentEmpty = 0
				currentActive++
				r.MaxStreak = max(r.MaxStreak, currentActive)
			} else {
				r.EmptyDays++
				currentEmpty++
				longestEmpty = max(longestEmpty, currentEmpty)
				currentActive = 0
			}

			i, ok := monthIndex[date.Month()]
			if !ok {
				i = len(r.Months)
				monthIndex[date.Month()] = i
				r.Months = append(r.Months, Month{Name: date.Month().String()})
			}
			m := &r.Months[i]
			m.Contributions += count
			m.TotalDays++
			if count > 0 {
				m.ActiveDays++
			}
		}
		r.Weeks = append(r.Weeks, ws)
		if ws.Empty {
			r.EmptyWeeks = append(r.EmptyWeeks, ws.Index)
		}
	}

	if r.TotalDays == 0 {
		return Result{}, &MalformedCalendarError{Week: -1, Day: -1, Reason: "calendar has no days"}
	}
	r.CurrentStreak = currentActive
	r.AverageContributions = float64(r.TotalContributions) / float64(r.TotalDays)
	r.FillRate = float64(r.ActiveDays) / float64(r.TotalDays) * 100
	r.LongestEmptyStreak = longestEmpty / 7
	return r, nil
}

// Trend is the per-month view of a Result.
type Trend struct {
	Month         string
	Contributions int
	ActiveDays    int
	// Intensity is contributions per active day, rounded to one decimal.
	Intensity float64
}

func MonthlyTrend(r Result) []Trend {
	out := make([]Trend, 0, len(r.Months))
	for _, m := range r.Months {
		t := Trend{Month: m.Name, Contributions: m.Contributions, ActiveDays: m.ActiveDays}
		if m.ActiveDays > 0 {
			t.Intensity = round1(float64(m.Contributions) / float64(m.ActiveDays))
		}
		out = append(out, t)
	}
	return out
}

// YearSummary is the part of a Result shown in a comparison.
type YearSummary struct {
	Year     int
	Total    int
	Average  float64
	FillRate float64
}

// Comparison contrasts a year with the one before it.
type Comparison struct {
	Current  YearSummary
	Previous YearSummary
	// TotalDelta is current minus previous.
	TotalDelta int
	// PercentageDelta is TotalDelta relative to the previous total, rounded
	// to one decimal. It is 0 when the previous year had no contributions.
	PercentageDelta float64
	FillRateDelta   float64
}

func Compare(current, previous Result) Comparison {
	c := Comparison{
		Current:       summarize(current),
		Previous:      summarize(previous),
		TotalDelta:    current.TotalContributions - previous.TotalContributions,
		FillRateDelta: current.FillRate - previous.FillRate,
	}
	if previous.TotalContributions > 0 {
		c.PercentageDelta = round1(float64(c.TotalDelta) / float64(previous.TotalContributions) * 100)
	}
	return c
}

func summarize(r Result) YearSummary {
	return YearSummary{Year: r.Year, Total: r.TotalContributions, Average: r.AverageContributions, FillRate: r.FillRate}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
