package github

import (
	"math/rand/v2"
	"time"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
)

// MockCalendar fabricates a calendar for year without touching the network.
// Roughly 30% of days get a count between 0 and 4. The same seed always
// yields the same calendar.
func MockCalendar(year int, seed uint64) Calendar {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g := grid.New(year)
	var cal Calendar
	for _, col := range g.YearGrid() {
		var w Week
		for _, c := range col {
			if !c.Valid {
				continue
			}
			count := 0
			if rng.Float64() > 0.7 {
				count = rng.IntN(5)
			}
			w.ContributionDays = append(w.ContributionDays, Day{
				Date:              c.Date.Format(time.DateOnly),
				Weekday:           c.Day,
				ContributionCount: count,
			})
			cal.TotalContributions += count
		}
		cal.Weeks = append(cal.Weeks, w)
	}
	return cal
}
