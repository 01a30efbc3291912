package glyph

import (
	"errors"
	"strings"
	"testing"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

func weekSpan(points []pattern.Point, from, to int) (int, int, bool) {
	lo, hi, found := 0, 0, false
	for _, p := range points {
		if p.Week < from || p.Week > to {
			continue
		}
		if !found {
			lo, hi, found = p.Week, p.Week, true
			continue
		}
		lo = min(lo, p.Week)
		hi = max(hi, p.Week)
	}
	return lo, hi, found
}

func TestTextToCells_Layout(t *testing.T) {
	t.Parallel()

	g := grid.New(2023)
	points, warnings := TextToCells(g, "ab", 10, 3)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if lo, hi, ok := weekSpan(points, 10, 15); !ok || lo != 10 || hi != 14 {
		t.Fatalf("A spans %d..%d, want 10..14", lo, hi)
	}
	if lo, hi, ok := weekSpan(points, 16, 30); !ok || lo != 16 || hi != 20 {
		t.Fatalf("B spans %d..%d, want 16..20", lo, hi)
	}
	for _, p := range points {
		if p.Week == 15 {
			t.Fatalf("spacing column must stay empty, got %+v", p)
		}
		if p.Commits != 3 {
			t.Fatalf("expected intensity 3, got %+v", p)
		}
	}
}

func TestTextToCells_UnsupportedSkippedWithoutAdvance(t *testing.T) {
	t.Parallel()

	g := grid.New(2023)
	points, warnings := TextToCells(g, "A~B", 10, 1)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "~") {
		t.Fatalf("expected one warning naming '~', got %v", warnings)
	}
	if lo, hi, ok := weekSpan(points, 16, 30); !ok || lo != 16 || hi != 20 {
		t.Fatalf("B spans %d..%d, want 16..20", lo, hi)
	}
	if got := WeeksNeeded("A~B"); got != 11 {
		t.Fatalf("WeeksNeeded = %d, want 11", got)
	}
	if got := WeeksNeeded("~~"); got != 0 {
		t.Fatalf("WeeksNeeded of unsupported text = %d, want 0", got)
	}
}

func TestTextToCells_ClipsInvalidCells(t *testing.T) {
	t.Parallel()

	// 2024 starts on a Monday, so (0, 0) is padding.
	g := grid.New(2024)
	points, _ := TextToCells(g, "II", 0, 2)
	for _, p := range points {
		if !g.IsValidCell(p.Week, p.Day) {
			t.Fatalf("invalid cell emitted: %+v", p)
		}
	}
	if _, _, ok := weekSpan(points, 6, 10); !ok {
		t.Fatalf("second glyph must still start at week 6")
	}
}

func TestTextToCellsValidated_Overflow(t *testing.T) {
	t.Parallel()

	g := grid.New(2023)
	_, _, err := TextToCellsValidated(g, "VERYLONGTEXT", 50, 1)
	var tooLong *TextTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected *TextTooLongError, got %v", err)
	}
	if tooLong.Required != 71 || tooLong.Available != 3 || tooLong.StartWeek != 50 {
		t.Fatalf("unexpected error fields %+v", tooLong)
	}
	if !strings.Contains(err.Error(), "71") || !strings.Contains(err.Error(), "3 weeks") {
		t.Fatalf("message must name required and available weeks: %q", err)
	}
	if !IsTextTooLong(err) {
		t.Fatalf("IsTextTooLong = false")
	}

	if _, _, err := TextToCellsValidated(g, "HI", 10, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestText_AppliesEffects(t *testing.T) {
	t.Parallel()

	g := grid.New(2023)
	plain, _, err := Text(g, "L", TextOptions{StartWeek: 5, Intensity: 2})
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	shadowed, _, err := Text(g, "L", TextOptions{StartWeek: 5, Intensity: 2, Effects: pattern.Effects{Shadow: true}})
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if len(shadowed) <= len(plain) {
		t.Fatalf("shadow must add cells: plain %d, shadowed %d", len(plain), len(shadowed))
	}
	if _, _, err := Text(g, "TOO LONG FOR HERE", TextOptions{StartWeek: 45, Strict: true}); !IsTextTooLong(err) {
		t.Fatalf("strict text must reject overflow, got %v", err)
	}
}

func TestMultiLine(t *testing.T) {
	t.Parallel()

	g := grid.New(2023)
	points, _ := MultiLine(g, []string{"HI", "", "A"}, 2, 2, 1)
	// "HI" needs 11 weeks, then 2 spacing: "A" starts at week 15.
	if lo, hi, ok := weekSpan(points, 14, 30); !ok || lo != 15 || hi != 19 {
		t.Fatalf("second line spans %d..%d, want 15..19", lo, hi)
	}
}

func assertMirrored(t *testing.T, name string, points []pattern.Point, startWeek, width int) {
	t.Helper()
	set := map[pattern.Key]bool{}
	for _, p := range points {
		set[p.Key()] = true
	}
	for k := range set {
		mirror := pattern.Key{Week: 2*startWeek + width - 1 - k.Week, Day: k.Day}
		if !set[mirror] {
			t.Fatalf("%s: cell %+v has no mirror %+v", name, k, mirror)
		}
	}
}

func TestShapes_SymmetricAfterTranspose(t *testing.T) {
	t.Parallel()

	g := grid.New(2023)
	for _, name := range []string{"heart", "star", "diamond", "triangle"} {
		m, _ := ShapeBitmap(name)
		for r, row := range m {
			for c := range row {
				if row[c] != row[len(row)-1-c] {
					t.Fatalf("%s bitmap row %d is not mirrored", name, r)
				}
			}
		}
		points, err := Shape(g, name, 20, 3)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		assertMirrored(t, name, points, 20, ShapeWidth(name))
	}

	heart := Heart(g, 20, 4)
	if lo, hi, _ := weekSpan(heart, 0, 60); lo != 20 || hi != 28 {
		t.Fatalf("heart spans %d..%d, want 20..28", lo, hi)
	}
	// The tip of the heart is the bottom row (Saturday) in the middle week.
	tip := false
	for _, p := range heart {
		if p.Day == 6 {
			if p.Week < 23 || p.Week > 25 {
				t.Fatalf("unexpected bottom cell %+v", p)
			}
			tip = true
		}
	}
	if !tip {
		t.Fatalf("heart has no bottom row")
	}
	if len(Star(g, 30, 3)) == 0 || len(Square(g, 30, 3)) != 49 {
		t.Fatalf("unexpected star or square size")
	}
	if len(Triangle(g, 30, 3)) != 16 || len(Diamond(g, 30, 3)) != 25 {
		t.Fatalf("unexpected triangle or diamond size")
	}
	if _, err := Shape(g, "blob", 0, 1); err == nil {
		t.Fatalf("expected error for unknown shape")
	}
}

func TestCustomBitmapToCells(t *testing.T) {
	t.Parallel()

	g := grid.New(2023)
	// 2023 ends on a Sunday: week 52 holds only Dec 31, so (52, 1) is rejected.
	got := CustomBitmapToCells(g, [][]int{{0, 5}, {1}}, 52, 2)
	if len(got) != 0 {
		t.Fatalf("expected every cell past Dec 31 dropped, got %+v", got)
	}
	got = CustomBitmapToCells(g, [][]int{{0, 5}, {1}}, 51, 2)
	want := []pattern.Point{{Week: 51, Day: 1, Commits: 5}, {Week: 52, Day: 0, Commits: 2}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTranspose(t *testing.T) {
	t.Parallel()

	got := Transpose([][]int{{1, 2, 3}, {4, 5, 6}})
	if len(got) != 3 || got[0][1] != 4 || got[2][0] != 3 {
		t.Fatalf("unexpected transpose %v", got)
	}
	if Transpose(nil) != nil {
		t.Fatalf("expected nil")
	}
}
