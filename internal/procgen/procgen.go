// Package procgen generates geometric patterns directly as grid points.
// Every generator drops cells the year's grid rejects.
package procgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

// Generator names accepted by Generate.
const (
	NameDiagonal     = "diagonal"
	NameCheckerboard = "checkerboard"
	NameWave         = "wave"
	NameSpiral       = "spiral"
	NameRandom       = "random"
)

// Names lists the generators in the order they are offered to users.
var Names = []string{NameWave, NameCheckerboard, NameDiagonal, NameSpiral, NameRandom}

const (
	maxDiagonal  = grid.Rows
	spiralStep   = 0.2
	spiralWeeks  = 15
	spiralCenter = 5
	randomMaxWk  = 52
)

// Diagonal places up to length (at most 7) cells at (startWeek+i, i).
func Diagonal(g grid.Grid, startWeek, length, intensity int) []pattern.Point {
	intensity = pattern.ClampIntensity(intensity)
	var out []pattern.Point
	for i := 0; i < length && i < maxDiagonal; i++ {
		if g.IsValidCell(startWeek+i, i) {
			out = append(out, pattern.Point{Week: startWeek + i, Day: i, Commits: intensity})
		}
	}
	return out
}

// Checkerboard fills every cell of [startWeek, endWeek] whose week+day is
// even. The range is clipped to the grid.
func Checkerboard(g grid.Grid, startWeek, endWeek, intensity int) []pattern.Point {
	intensity = pattern.ClampIntensity(intensity)
	startWeek = max(startWeek, 0)
	endWeek = min(endWeek, g.TotalWeeks()-1)
	var out []pattern.Point
	for week := startWeek; week <= endWeek; week++ {
		for day := range grid.Rows {
			if (week+day)%2 != 0 || !g.IsValidCell(week, day) {
				continue
			}
			out = append(out, pattern.Point{Week: week, Day: day, Commits: intensity})
		}
	}
	return out
}

// Wave draws a two-cell-thick sine line from startWeek to the end of the
// grid. The cell above the line gets one commit less.
func Wave(g grid.Grid, startWeek int, amplitude, wavelength float64, intensity int) []pattern.Point {
	intensity = pattern.ClampIntensity(intensity)
	if wavelength == 0 {
		wavelength = 1
	}
	var out []pattern.Point
	for week := max(startWeek, 0); week < g.TotalWeeks(); week++ {
		y := roundHalfUp(amplitude*math.Sin(2*math.Pi*float64(week)/wavelength) + 3.5)
		y = min(max(y, 0), grid.Rows-1)
		if g.IsValidCell(week, y) {
			out = append(out, pattern.Point{Week: week, Day: y, Commits: intensity})
		}
		if y > 0 && g.IsValidCell(week, y-1) {
			out = append(out, pattern.Point{Week: week, Day: y - 1, Commits: max(1, intensity-1)})
		}
	}
	return out
}

// Spiral sweeps two turns of an Archimedean spiral centered five weeks
// after startWeek, keeping cells within a 15-week window.
func Spiral(g grid.Grid, startWeek, intensity int) []pattern.Point {
	intensity = pattern.ClampIntensity(intensity)
	centerWeek := float64(startWeek + spiralCenter)
	centerDay := 3.0
	seen := map[pattern.Key]bool{}
	var out []pattern.Point
	for i := 0; ; i++ {
		angle := float64(i) * spiralStep
		if angle >= 4*math.Pi {
			break
		}
		radius := angle / 2
		week := roundHalfUp(centerWeek + radius*math.Cos(angle))
		day := roundHalfUp(centerDay + radius*math.Sin(angle)/2)
		if week < startWeek || week >= startWeek+spiralWeeks || day < 0 || day >= grid.Rows {
			continue
		}
		k := pattern.Key{Week: week, Day: day}
		if seen[k] || !g.IsValidCell(week, day) {
			continue
		}
		seen[k] = true
		out = append(out, pattern.Point{Week: week, Day: day, Commits: intensity})
	}
	return out
}

// Random picks count distinct cells among weeks 1..52 with commit counts
// uniform in [1, intensity]. count is capped at the number of valid cells.
func Random(g grid.Grid, count, intensity int, rng *rand.Rand) []pattern.Point {
	intensity = pattern.ClampIntensity(intensity)
	var candidates []pattern.Key
	for week := 1; week <= randomMaxWk; week++ {
		for day := range grid.Rows {
			if g.IsValidCell(week, day) {
				candidates = append(candidates, pattern.Key{Week: week, Day: day})
			}
		}
	}
	count = min(max(count, 0), len(candidates))
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	out := make([]pattern.Point, 0, count)
	for _, k := range candidates[:count] {
		out = append(out, pattern.Point{Week: k.Week, Day: k.Day, Commits: 1 + rng.IntN(intensity)})
	}
	return out
}

// NewRand returns a deterministic source for Random.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Options parameterizes Generate. Zero fields take the generator's default.
type Options struct {
	StartWeek  int
	EndWeek    int
	Length     int
	Amplitude  float64
	Wavelength float64
	Count      int
	Intensity  int
	Seed       uint64
}

// Defaults returns the default options of a generator.
func Defaults(name string) Options {
	switch name {
	case NameWave:
		return Options{StartWeek: 0, Amplitude: 3, Wavelength: 10, Intensity: 3}
	case NameCheckerboard:
		return Options{StartWeek: 0, EndWeek: 52, Intensity: 2}
	case NameDiagonal:
		return Options{StartWeek: 5, Length: 10, Intensity: 2}
	case NameSpiral:
		return Options{StartWeek: 10, Intensity: 3}
	case NameRandom:
		return Options{Count: 100, Intensity: 2}
	}
	return Options{}
}

func (o Options) withDefaults(name string) Options {
	d := Defaults(name)
	if o.StartWeek == 0 {
		o.StartWeek = d.StartWeek
	}
	if o.EndWeek == 0 {
		o.EndWeek = d.EndWeek
	}
	if o.Length == 0 {
		o.Length = d.Length
	}
	if o.Amplitude == 0 {
		o.Amplitude = d.Amplitude
	}
	if o.Wavelength == 0 {
		o.Wavelength = d.Wavelength
	}
	if o.Count == 0 {
		o.Count = d.Count
	}
	if o.Intensity == 0 {
		o.Intensity = d.Intensity
	}
	return o
}

// Generate runs the named generator.
func Generate(g grid.Grid, name string, opts Options) ([]pattern.Point, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	opts = opts.withDefaults(name)
	switch name {
	case NameDiagonal:
		return Diagonal(g, opts.StartWeek, opts.Length, opts.Intensity), nil
	case NameCheckerboard:
		return Checkerboard(g, opts.StartWeek, opts.EndWeek, opts.Intensity), nil
	case NameWave:
		return Wave(g, opts.StartWeek, opts.Amplitude, opts.Wavelength, opts.Intensity), nil
	case NameSpiral:
		return Spiral(g, opts.StartWeek, opts.Intensity), nil
	case NameRandom:
		return Random(g, opts.Count, opts.Intensity, NewRand(opts.Seed)), nil
	}
	return nil, fmt.Errorf("unknown effect %q (available: %s)", name, strings.Join(Names, ", "))
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
