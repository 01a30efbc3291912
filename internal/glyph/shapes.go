package glyph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

// Shape bitmaps are drawn as they appear on screen: rows are weekdays and
// columns are weeks. They are transposed before projection.
var shapes = map[string][][]int{
	"heart": {
		{0, 1, 1, 0, 0, 0, 1, 1, 0},
		{1, 1, 1, 1, 0, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 1, 1, 1, 0, 0},
		{0, 0, 0, 1, 1, 1, 0, 0, 0},
	},
	"star": {
		{0, 0, 0, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 0},
		{0, 1, 0, 0, 0, 1, 0},
		{1, 0, 0, 0, 0, 0, 1},
	},
	"triangle": {
		{0, 0, 0, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	},
	"square": {
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1},
	},
	"diamond": {
		{0, 0, 0, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 1, 0, 0},
		{0, 0, 0, 1, 0, 0, 0},
	},
}

// ShapeNames lists the built-in shapes in alphabetical order.
func ShapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ShapeBitmap returns a copy of the named shape in its drawn orientation.
func ShapeBitmap(name string) ([][]int, bool) {
	m, ok := shapes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out, true
}

// ShapeWidth returns how many weeks the named shape spans, or 0 when unknown.
func ShapeWidth(name string) int {
	m, ok := shapes[strings.ToLower(name)]
	if !ok || len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Shape projects the named shape with its left edge at startWeek.
func Shape(g grid.Grid, name string, startWeek, intensity int) ([]pattern.Point, error) {
	m, ok := shapes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q (available: %s)", name, strings.Join(ShapeNames(), ", "))
	}
	return CustomBitmapToCells(g, Transpose(m), startWeek, intensity), nil
}

func Heart(g grid.Grid, startWeek, intensity int) []pattern.Point {
	return CustomBitmapToCells(g, Transpose(shapes["heart"]), startWeek, intensity)
}

func Star(g grid.Grid, startWeek, intensity int) []pattern.Point {
	return CustomBitmapToCells(g, Transpose(shapes["star"]), startWeek, intensity)
}

func Triangle(g grid.Grid, startWeek, intensity int) []pattern.Point {
	return CustomBitmapToCells(g, Transpose(shapes["triangle"]), startWeek, intensity)
}

func Square(g grid.Grid, startWeek, intensity int) []pattern.Point {
	return CustomBitmapToCells(g, Transpose(shapes["square"]), startWeek, intensity)
}

func Diamond(g grid.Grid, startWeek, intensity int) []pattern.Point {
	return CustomBitmapToCells(g, Transpose(shapes["diamond"]), startWeek, intensity)
}
