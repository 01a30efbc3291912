package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/analysis"
	"github.com/fchimpan/gh-kusa-painter/internal/github"
	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		mock        bool
		seed        uint64
		compare     bool
		text        string
		interactive bool
		asJSON      bool
		listYears   bool
	)
	c := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a year of contributions and suggest where patterns fit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if listYears {
				return a.printActiveYears(cmd)
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(a.year)
			}
			login, cal, err := loadCalendar(ctx, a, a.year, mock, seed)
			if err != nil {
				return a.githubErr(err)
			}
			r, err := analysis.Analyze(cal, a.year)
			if err != nil {
				return err
			}
			suggestions := analysis.SuggestPlacements(r, strings.ToUpper(text))

			var cmp *analysis.Comparison
			if compare {
				_, prevCal, err := loadCalendar(ctx, a, a.year-1, mock, seed+1)
				if err != nil {
					return a.githubErr(err)
				}
				prev, err := analysis.Analyze(prevCal, a.year-1)
				if err != nil {
					return err
				}
				c := analysis.Compare(r, prev)
				cmp = &c
			}

			switch {
			case asJSON:
				return writeAnalysisJSON(a.deps.Stdout, login, r, suggestions, cmp)
			case interactive:
				if a.deps.RunDashboard == nil {
					return fmt.Errorf("deps.RunDashboard is nil")
				}
				return a.deps.RunDashboard(login, r, mapping.FromCalendar(grid.New(a.year), cal), suggestions)
			}
			writeAnalysis(a.deps.Stdout, login, r, suggestions, cmp)
			return nil
		},
	}
	c.Flags().BoolVar(&mock, "mock", false, "analyze generated data instead of fetching from GitHub")
	c.Flags().Uint64Var(&seed, "seed", 0, "seed for --mock data (default: the year)")
	c.Flags().BoolVar(&compare, "compare", false, "compare with the previous year")
	c.Flags().StringVarP(&text, "text", "t", "", "suggest where this text would fit")
	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the full-screen dashboard")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	c.Flags().BoolVar(&listYears, "years", false, "list the years with contributions and exit")
	return c
}

// printActiveYears lists contribution years, falling back to the last three
// years when the account cannot be looked up.
func (a *app) printActiveYears(cmd *cobra.Command) error {
	var acct github.Account
	if a.deps.FetchAccount != nil && a.deps.HasCredentials != nil && a.deps.HasCredentials() {
		var err error
		acct, err = a.deps.FetchAccount(cmd.Context(), a.user)
		if err != nil {
			if github.IsUserNotFound(err) {
				return err
			}
			a.log.Warn("could not fetch contribution years", "err", err)
		}
	}
	years := acct.ActiveYears(a.deps.Now())
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	fmt.Fprintln(a.deps.Stdout, strings.Join(parts, " "))
	if created := acct.CreatedYear(); created != 0 {
		fmt.Fprintf(a.deps.Stdout, "account created in %d\n", created)
	}
	return nil
}

func writeAnalysis(w io.Writer, login string, r analysis.Result, suggestions []analysis.Suggestion, cmp *analysis.Comparison) {
	fmt.Fprintf(w, "Contribution analysis for %s (%d)\n\n", login, r.Year)
	fmt.Fprintf(w, "- Total contributions: %d\n", r.TotalContributions)
	fmt.Fprintf(w, "- Active days: %d of %d (%.1f%%)\n", r.ActiveDays, r.TotalDays, r.FillRate)
	fmt.Fprintf(w, "- Average per day: %.2f\n", r.AverageContributions)
	fmt.Fprintf(w, "- Busiest day: %s (%d)\n", r.BusiestDay, r.BusiestDayCount)
	fmt.Fprintf(w, "- Streak: current %d, longest %d days\n", r.CurrentStreak, r.MaxStreak)
	fmt.Fprintf(w, "- Empty weeks: %d (longest gap %d weeks)\n", len(r.EmptyWeeks), r.LongestEmptyStreak)

	if spaces := analysis.EmptySpaces(r); len(spaces) > 0 {
		fmt.Fprintln(w, "\nEmpty stretches:")
		for _, s := range spaces {
			fmt.Fprintf(w, "- weeks %d-%d (%d weeks)\n", s.Start, s.End, s.Length)
		}
	}

	fmt.Fprintln(w, "\nMonthly trend:")
	for _, t := range analysis.MonthlyTrend(r) {
		fmt.Fprintf(w, "- %-9s %5d contributions, %2d active days, %.1f per active day\n", t.Month, t.Contributions, t.ActiveDays, t.Intensity)
	}

	fmt.Fprintln(w, "\nSuggestions:")
	for _, s := range suggestions {
		fmt.Fprintf(w, "- [%s] %s\n", s.Kind, s.Message)
	}

	if cmp != nil {
		fmt.Fprintf(w, "\nCompared with %d:\n", cmp.Previous.Year)
		fmt.Fprintf(w, "- Contributions: %d -> %d (%+d, %+.1f%%)\n", cmp.Previous.Total, cmp.Current.Total, cmp.TotalDelta, cmp.PercentageDelta)
		fmt.Fprintf(w, "- Fill rate: %.1f%% -> %.1f%% (%+.1f)\n", cmp.Previous.FillRate, cmp.Current.FillRate, cmp.FillRateDelta)
	}
}

type analysisJSON struct {
	Login       string                `json:"login"`
	Result      analysis.Result       `json:"result"`
	Spaces      []analysis.Space      `json:"spaces"`
	Trend       []analysis.Trend      `json:"trend"`
	Suggestions []analysis.Suggestion `json:"suggestions"`
	Comparison  *analysis.Comparison  `json:"comparison,omitempty"`
}

func writeAnalysisJSON(w io.Writer, login string, r analysis.Result, suggestions []analysis.Suggestion, cmp *analysis.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(analysisJSON{
		Login:       login,
		Result:      r,
		Spaces:      analysis.EmptySpaces(r),
		Trend:       analysis.MonthlyTrend(r),
		Suggestions: suggestions,
		Comparison:  cmp,
	})
}
