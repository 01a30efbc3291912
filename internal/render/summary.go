package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
)

// Summary counts the planned commits of a pattern preview.
type Summary struct {
	Days          int
	Commits       int
	Average       float64
	ValidCommits  int
	FutureCommits int
	FutureDays    int
}

// Summarize counts days with commits and splits commits into those that can
// be written now and those dated in the future.
func Summarize(p mapping.Preview) Summary {
	var s Summary
	for r := range p.Rows {
		for c := range p.Cols {
			cell := p.Cells[r][c]
			if !cell.Valid || cell.Count <= 0 {
				continue
			}
			s.Days++
			s.Commits += cell.Count
			if cell.Future {
				s.FutureDays++
				s.FutureCommits += cell.Count
			} else {
				s.ValidCommits += cell.Count
			}
		}
	}
	if s.Days > 0 {
		s.Average = float64(s.Commits) / float64(s.Days)
	}
	return s
}

func WriteSummary(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("\nStatistics:\n")
	fmt.Fprintf(&b, "- Days with commits: %d\n", s.Days)
	fmt.Fprintf(&b, "- Total commits planned: %d\n", s.Commits)
	fmt.Fprintf(&b, "- Average commits per day: %.2f\n", s.Average)
	if s.FutureCommits > 0 {
		fmt.Fprintf(&b, "\nwarning: %d commits on %d future days will be skipped\n", s.FutureCommits, s.FutureDays)
		fmt.Fprintf(&b, "- Valid commits: %d\n", s.ValidCommits)
		fmt.Fprintf(&b, "- Future commits (skipped): %d\n", s.FutureCommits)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
