// Package schedule turns a pattern into an ordered list of backdated commits
// and writes them into a git repository.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

const (
	DefaultInterval      = 30 * time.Minute
	DefaultTrackerFile   = "contribution-tracker.json"
	DefaultMessagePrefix = "feat:"
)

// Commit is one backdated commit. Index runs from 1 to Total within a day.
type Commit struct {
	Date  time.Time
	Week  int
	Day   int
	Index int
	Total int
	Time  time.Time
}

// Plan is the ordered result of Build.
type Plan struct {
	Year    int
	Commits []Commit
	// Requested is the number of commits asked for on valid cells.
	Requested int
	// Skipped counts commits dropped because their day or timestamp is after now.
	Skipped int
	// Invalid counts points that fall outside the year.
	Invalid int
}

// Days returns the number of distinct days that receive at least one commit.
func (p Plan) Days() int {
	seen := map[pattern.Key]struct{}{}
	for _, c := range p.Commits {
		seen[pattern.Key{Week: c.Week, Day: c.Day}] = struct{}{}
	}
	return len(seen)
}

// Build orders points by week then day and expands each into commits at
// date + i*step for i in 1..commits, where step is interval shrunk so that
// every commit stays inside its own day. Days after now are skipped whole;
// single timestamps after now are skipped one by one. Dates are taken in
// now's location.
func Build(g grid.Grid, points []pattern.Point, now time.Time, interval time.Duration) Plan {
	if interval <= 0 {
		interval = DefaultInterval
	}
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	plan := Plan{Year: g.Year()}
	for _, p := range pattern.Optimize(points) {
		d, ok := g.CellToDate(p.Week, p.Day)
		if !ok {
			plan.Invalid++
			continue
		}
		total := pattern.ClampIntensity(p.Commits)
		plan.Requested += total
		date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		if date.After(today) {
			plan.Skipped += total
			continue
		}
		step := dayStep(date, total, interval)
		for i := 1; i <= total; i++ {
			at := date.Add(time.Duration(i) * step)
			if at.After(now) {
				plan.Skipped++
				continue
			}
			plan.Commits = append(plan.Commits, Commit{
				Date:  date,
				Week:  p.Week,
				Day:   p.Day,
				Index: i,
				Total: total,
				Time:  at,
			})
		}
	}
	return plan
}

// dayStep returns the spacing of total commits on date: interval, or less
// when total*interval would reach the next midnight.
func dayStep(date time.Time, total int, interval time.Duration) time.Duration {
	length := date.AddDate(0, 0, 1).Sub(date)
	return min(interval, length/time.Duration(total+1))
}

// Message formats the commit message for c.
func Message(prefix string, c Commit) string {
	msg := fmt.Sprintf("w%dd%d commit %d", c.Week, c.Day, c.Index)
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		msg = prefix + " " + msg
	}
	return msg
}
