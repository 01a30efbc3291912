package pattern

import (
	"fmt"
	"math"
	"strings"
)

// Effect names accepted by ParseEffect.
const (
	EffectGradient    = "gradient"
	EffectAlternating = "alternating"
	EffectShadow      = "shadow"
)

// Gradient ramps commit counts from 1 to 4 across the set's week span.
func Gradient(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	minWeek, maxWeek := points[0].Week, points[0].Week
	for _, p := range points {
		minWeek = min(minWeek, p.Week)
		maxWeek = max(maxWeek, p.Week)
	}
	span := float64(maxWeek - minWeek + 1)
	out := make([]Point, len(points))
	for i, p := range points {
		progress := float64(p.Week-minWeek) / span
		p.Commits = int(math.Ceil(1 + progress*3))
		out[i] = p
	}
	return out
}

// Alternating sets commit counts to 4, 2, 4, 2, ... by position in the list.
func Alternating(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]Point, len(points))
	for i, p := range points {
		if i%2 == 0 {
			p.Commits = 4
		} else {
			p.Commits = 2
		}
		out[i] = p
	}
	return out
}

// Shadow adds a single-commit cell one week right and one day down from each
// point (the day is capped at Saturday). Existing cells are never overwritten.
// When valid is non-nil, shadow cells it rejects are dropped.
func Shadow(points []Point, valid func(week, day int) bool) []Point {
	taken := make(map[Key]bool, len(points))
	for _, p := range points {
		taken[p.Key()] = true
	}
	out := append([]Point(nil), points...)
	for _, p := range points {
		k := Key{Week: p.Week + 1, Day: min(p.Day+1, 6)}
		if taken[k] {
			continue
		}
		if valid != nil && !valid(k.Week, k.Day) {
			continue
		}
		taken[k] = true
		out = append(out, Point{Week: k.Week, Day: k.Day, Commits: 1})
	}
	return out
}

// Effects selects post-processing applied to a generated pattern.
type Effects struct {
	Gradient    bool
	Alternating bool
	Shadow      bool
}

// Apply runs the enabled effects in order gradient, alternating, shadow.
func (e Effects) Apply(points []Point, valid func(week, day int) bool) []Point {
	if e.Gradient {
		points = Gradient(points)
	}
	if e.Alternating {
		points = Alternating(points)
	}
	if e.Shadow {
		points = Shadow(points, valid)
	}
	return points
}

// ParseEffects reads a comma separated effect list such as "gradient,shadow".
func ParseEffects(s string) (Effects, error) {
	var e Effects
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "":
		case EffectGradient:
			e.Gradient = true
		case EffectAlternating:
			e.Alternating = true
		case EffectShadow:
			e.Shadow = true
		default:
			return Effects{}, fmt.Errorf("unknown effect %q (available: %s, %s, %s)", name, EffectGradient, EffectAlternating, EffectShadow)
		}
	}
	return e, nil
}
