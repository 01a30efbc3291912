package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
	"github.com/fchimpan/gh-kusa-painter/internal/store"
)

// outputFlags are shared by every command that produces a pattern.
type outputFlags struct {
	out       string
	mergeInto string
}

func (o *outputFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&o.out, "out", "o", "", "write the pattern to this file (.json, .yaml or .yml) instead of stdout")
	c.Flags().StringVar(&o.mergeInto, "merge-into", "", "merge with an existing pattern file; written back to it unless --out is set")
}

// emit merges points into --merge-into when asked and writes the result to
// --out, the merged file, or stdout as JSON.
func (a *app) emit(o outputFlags, points []pattern.Point) error {
	target := o.out
	if o.mergeInto != "" {
		existing, warnings, err := pattern.Load(o.mergeInto)
		if err != nil {
			return err
		}
		a.warnAll("merge target", warnings)
		points = pattern.Merge(existing, points)
		if target == "" {
			target = o.mergeInto
		}
	}
	points = pattern.Optimize(points)

	if target == "" {
		data, err := pattern.Encode("stdout.json", points)
		if err != nil {
			return err
		}
		_, err = a.deps.Stdout.Write(data)
		return err
	}
	if err := pattern.Save(target, points); err != nil {
		return err
	}
	st := pattern.Summarize(points)
	fmt.Fprintf(a.deps.Stderr, "wrote %d days (%d commits) to %s\n", st.TotalDays, st.TotalCommits, target)
	return nil
}

// loadPoints reads a pattern file, or a saved pattern when name is set.
func (a *app) loadPoints(cmd *cobra.Command, path, name string) ([]pattern.Point, error) {
	switch {
	case name != "" && path != "":
		return nil, fmt.Errorf("give either a pattern file or --pattern, not both")
	case name != "":
		var points []pattern.Point
		err := a.withStore(func(st *store.Store) error {
			saved, err := st.LoadPattern(cmd.Context(), name)
			points = saved.Points
			return err
		})
		return points, err
	case path != "":
		points, warnings, err := pattern.Load(path)
		if err != nil {
			return nil, err
		}
		a.warnAll("pattern", warnings)
		return points, nil
	}
	return nil, fmt.Errorf("a pattern file or --pattern is required")
}
