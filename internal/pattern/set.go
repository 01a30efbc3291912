package pattern

import (
	"fmt"
	"slices"
)

const (
	// MinWeek and MaxWeek bound the calendar-agnostic week check of Validate.
	MinWeek = 1
	MaxWeek = 53
	// MaxRecommendedCommits is the per-day count above which Validate warns.
	MaxRecommendedCommits = 20
)

// Merge unions several point sets. Points sharing a cell collapse into one
// carrying the highest commit count. Cells keep their first-seen order.
func Merge(sets ...[]Point) []Point {
	index := map[Key]int{}
	var out []Point
	for _, set := range sets {
		for _, p := range set {
			if i, ok := index[p.Key()]; ok {
				out[i].Commits = max(out[i].Commits, p.Commits)
				continue
			}
			index[p.Key()] = len(out)
			out = append(out, p)
		}
	}
	return out
}

// Optimize removes duplicate cells, keeping the highest commit count, and
// sorts by week then day. The result is the order commits must be written in.
func Optimize(points []Point) []Point {
	out := Merge(points)
	slices.SortFunc(out, Compare)
	return out
}

// Compare orders points by week, then day.
func Compare(a, b Point) int {
	if a.Week != b.Week {
		return a.Week - b.Week
	}
	return a.Day - b.Day
}

// Validation is the outcome of Validate. Errors make a set unusable;
// warnings are advisory.
type Validation struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Validate checks every point and reports all problems at once.
func Validate(points []Point) Validation {
	var v Validation
	for i, p := range points {
		if p.Week < MinWeek || p.Week > MaxWeek {
			v.Errors = append(v.Errors, fmt.Sprintf("point %d: week %d must be between %d and %d", i, p.Week, MinWeek, MaxWeek))
		}
		if p.Day < 0 || p.Day > 6 {
			v.Errors = append(v.Errors, fmt.Sprintf("point %d: day %d must be between 0 and 6", i, p.Day))
		}
		if p.Commits < 1 {
			v.Errors = append(v.Errors, fmt.Sprintf("point %d: commit count %d must be at least 1", i, p.Commits))
		} else if p.Commits > MaxRecommendedCommits {
			v.Warnings = append(v.Warnings, fmt.Sprintf("point %d: high commit count (%d), more than %d per day looks unnatural", i, p.Commits, MaxRecommendedCommits))
		}
	}
	v.IsValid = len(v.Errors) == 0
	return v
}

// WeekRange is an inclusive week span.
type WeekRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IntensityStats describes the spread of commit counts.
type IntensityStats struct {
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Average float64 `json:"average"`
}

// Stats summarizes a point set for confirmation prompts.
type Stats struct {
	TotalCommits int            `json:"totalCommits"`
	TotalDays    int            `json:"totalDays"`
	WeekRange    WeekRange      `json:"weekRange"`
	Intensity    IntensityStats `json:"intensity"`
}

// Summarize computes Stats. An empty set yields the zero value.
func Summarize(points []Point) Stats {
	if len(points) == 0 {
		return Stats{}
	}
	s := Stats{
		TotalDays: len(points),
		WeekRange: WeekRange{Start: points[0].Week, End: points[0].Week},
		Intensity: IntensityStats{Min: points[0].Commits, Max: points[0].Commits},
	}
	for _, p := range points {
		s.TotalCommits += p.Commits
		s.WeekRange.Start = min(s.WeekRange.Start, p.Week)
		s.WeekRange.End = max(s.WeekRange.End, p.Week)
		s.Intensity.Min = min(s.Intensity.Min, p.Commits)
		s.Intensity.Max = max(s.Intensity.Max, p.Commits)
	}
	s.Intensity.Average = float64(s.TotalCommits) / float64(len(points))
	return s
}

// Filter keeps the points accepted by keep, preserving order.
func Filter(points []Point, keep func(week, day int) bool) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if keep(p.Week, p.Day) {
			out = append(out, p)
		}
	}
	return out
}
