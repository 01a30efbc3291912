package pattern

import "testing"

func TestGradient(t *testing.T) {
	t.Parallel()

	points := []Point{
		{Week: 10, Day: 0, Commits: 3},
		{Week: 11, Day: 0, Commits: 3},
		{Week: 12, Day: 0, Commits: 3},
		{Week: 13, Day: 0, Commits: 3},
	}
	got := Gradient(points)
	want := []int{1, 2, 3, 4}
	for i, p := range got {
		if p.Commits != want[i] {
			t.Fatalf("point %d: got %d commits, want %d", i, p.Commits, want[i])
		}
	}
	if points[0].Commits != 3 {
		t.Fatalf("input must not be mutated")
	}
	if Gradient(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestAlternating(t *testing.T) {
	t.Parallel()

	got := Alternating([]Point{{Week: 9, Day: 3}, {Week: 1, Day: 1}, {Week: 5, Day: 0}})
	if got[0].Commits != 4 || got[1].Commits != 2 || got[2].Commits != 4 {
		t.Fatalf("unexpected alternation %+v", got)
	}
}

func TestShadow(t *testing.T) {
	t.Parallel()

	points := []Point{
		{Week: 1, Day: 0, Commits: 3},
		{Week: 2, Day: 1, Commits: 3}, // shadow of the first point, already present
		{Week: 4, Day: 6, Commits: 3}, // shadow day capped at 6
		{Week: 4, Day: 5, Commits: 3}, // same shadow cell as the previous point
	}
	got := Shadow(points, nil)
	byKey := map[Key]int{}
	for _, p := range got {
		if _, dup := byKey[p.Key()]; dup {
			t.Fatalf("duplicate cell %+v in %+v", p.Key(), got)
		}
		byKey[p.Key()] = p.Commits
	}
	if byKey[Key{Week: 2, Day: 1}] != 3 {
		t.Fatalf("existing point must not be overwritten")
	}
	if byKey[Key{Week: 3, Day: 2}] != 1 {
		t.Fatalf("expected shadow at (3,2)")
	}
	if byKey[Key{Week: 5, Day: 6}] != 1 {
		t.Fatalf("expected capped shadow at (5,6)")
	}
	if len(got) != len(points)+2 {
		t.Fatalf("expected 2 shadow cells, got %d points total", len(got))
	}

	filtered := Shadow(points, func(week, day int) bool { return week < 5 })
	if len(filtered) != len(points)+1 {
		t.Fatalf("expected rejected shadow to be dropped, got %+v", filtered)
	}
}

func TestParseEffects(t *testing.T) {
	t.Parallel()

	e, err := ParseEffects("gradient, Shadow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.Gradient || e.Alternating || !e.Shadow {
		t.Fatalf("unexpected effects %+v", e)
	}
	if _, err := ParseEffects("sparkle"); err == nil {
		t.Fatalf("expected error for unknown effect")
	}
}
