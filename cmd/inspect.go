package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a pattern file and list every problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read pattern: %w", err)
			}
			points, err := pattern.Decode(args[0], data)
			if err != nil {
				return err
			}
			v := pattern.Validate(points)
			g := grid.New(a.year)
			if outside := len(points) - len(pattern.Filter(points, g.IsValidCell)); outside > 0 {
				v.Warnings = append(v.Warnings, fmt.Sprintf("%d points fall outside %d and will be skipped", outside, a.year))
			}

			w := a.deps.Stdout
			for _, e := range v.Errors {
				fmt.Fprintf(w, "error: %s\n", e)
			}
			for _, warn := range v.Warnings {
				fmt.Fprintf(w, "warning: %s\n", warn)
			}
			if !v.IsValid {
				return fmt.Errorf("%s: %d errors", args[0], len(v.Errors))
			}
			fmt.Fprintf(w, "%s: ok (%d points)\n", args[0], len(points))
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		name   string
		asJSON bool
	)
	c := &cobra.Command{
		Use:   "stats [FILE]",
		Short: "Summarize a pattern: days, commits, week range and intensity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			points, err := a.loadPoints(cmd, path, name)
			if err != nil {
				return err
			}
			st := pattern.Summarize(pattern.Optimize(points))
			if asJSON {
				enc := json.NewEncoder(a.deps.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			w := a.deps.Stdout
			fmt.Fprintf(w, "days:      %d\n", st.TotalDays)
			fmt.Fprintf(w, "commits:   %d\n", st.TotalCommits)
			fmt.Fprintf(w, "weeks:     %d-%d\n", st.WeekRange.Start, st.WeekRange.End)
			fmt.Fprintf(w, "intensity: min %d, max %d, avg %.2f\n", st.Intensity.Min, st.Intensity.Max, st.Intensity.Average)
			return nil
		},
	}
	c.Flags().StringVarP(&name, "pattern", "p", "", "use a saved pattern instead of a file")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}
