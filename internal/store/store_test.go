package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPatterns_SaveLoadListClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTemp(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	heart := []pattern.Point{{Week: 20, Day: 1, Commits: 4}, {Week: 22, Day: 3, Commits: 2}}
	if err := s.SavePattern(ctx, "heart", heart, now); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SavePattern(ctx, "dot", []pattern.Point{{Week: 1, Day: 1, Commits: 1}}, now); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadPattern(ctx, "heart")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Points) != 2 || got.Points[0] != heart[0] || !got.SavedAt.Equal(now) {
		t.Fatalf("unexpected pattern %+v", got)
	}
	if got.Stats.TotalCommits != 6 || got.Stats.WeekRange != (pattern.WeekRange{Start: 20, End: 22}) || got.Stats.Intensity.Max != 4 {
		t.Fatalf("unexpected stats %+v", got.Stats)
	}

	// Saving under an existing name replaces it.
	if err := s.SavePattern(ctx, "heart", heart[:1], now.Add(time.Hour)); err != nil {
		t.Fatalf("resave: %v", err)
	}
	list, err := s.ListPatterns(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "dot" || list[1].Name != "heart" || len(list[1].Points) != 1 {
		t.Fatalf("unexpected list %+v", list)
	}

	n, err := s.ClearPatterns(ctx)
	if err != nil || n != 2 {
		t.Fatalf("clear: n=%d err=%v", n, err)
	}
	if _, err := s.LoadPattern(ctx, "heart"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.SavePattern(ctx, "", heart, now); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestHistory_CappedAndOrdered(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTemp(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range HistoryLimit + 5 {
		if err := s.AddHistory(ctx, fmt.Sprintf("action %d", i), start.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("add history %d: %v", i, err)
		}
	}
	all, err := s.History(ctx, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all) != HistoryLimit {
		t.Fatalf("expected %d entries, got %d", HistoryLimit, len(all))
	}
	if all[0].Action != "action 5" || all[len(all)-1].Action != fmt.Sprintf("action %d", HistoryLimit+4) {
		t.Fatalf("oldest entries must be dropped first: first %q last %q", all[0].Action, all[len(all)-1].Action)
	}
	recent, err := s.History(ctx, 3)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(recent) != 3 || recent[2].Action != all[len(all)-1].Action {
		t.Fatalf("unexpected recent entries %+v", recent)
	}
}
