// Package pattern holds the placement unit of the painter, Point, and the
// operations that combine, clean up and check collections of points.
package pattern

import (
	"errors"
	"fmt"
)

// Point asks for Commits backdated commits on the day at (Week, Day).
type Point struct {
	Week    int `json:"week" yaml:"week"`
	Day     int `json:"day" yaml:"day"`
	Commits int `json:"commits" yaml:"commits"`
}

// ErrInvalidPoint is wrapped by NewPoint for out-of-range values.
var ErrInvalidPoint = errors.New("invalid pattern point")

// NewPoint validates ranges that hold for every grid: week >= 0, day in 0..6
// and at least one commit. Year-specific validity is the grid's concern.
func NewPoint(week, day, commits int) (Point, error) {
	if week < 0 {
		return Point{}, fmt.Errorf("%w: week %d must be >= 0", ErrInvalidPoint, week)
	}
	if day < 0 || day > 6 {
		return Point{}, fmt.Errorf("%w: day %d must be between 0 and 6", ErrInvalidPoint, day)
	}
	if commits < 1 {
		return Point{}, fmt.Errorf("%w: commits %d must be >= 1", ErrInvalidPoint, commits)
	}
	return Point{Week: week, Day: day, Commits: commits}, nil
}

// Key identifies the grid cell of a point.
type Key struct {
	Week int
	Day  int
}

func (p Point) Key() Key { return Key{Week: p.Week, Day: p.Day} }

// ClampIntensity raises non-positive commit counts to 1.
func ClampIntensity(intensity int) int {
	if intensity < 1 {
		return 1
	}
	return intensity
}
