package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
	"github.com/fchimpan/gh-kusa-painter/internal/store"
)

func (a *app) openStore() (*store.Store, error) {
	if a.deps.OpenStore == nil {
		return nil, fmt.Errorf("deps.OpenStore is nil")
	}
	st, err := a.deps.OpenStore(a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

// withStore opens the database for the duration of fn.
func (a *app) withStore(fn func(*store.Store) error) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			a.log.Warn("failed to close db", "err", cerr)
		}
	}()
	return fn(st)
}

// recordHistory is best-effort: a history failure never fails the command.
func (a *app) recordHistory(cmd *cobra.Command, action string) {
	err := a.withStore(func(st *store.Store) error {
		return st.AddHistory(cmd.Context(), action, a.deps.Now())
	})
	if err != nil {
		a.log.Warn("failed to record history", "err", err)
	}
}

func newPatternsCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "patterns",
		Short: "Manage saved patterns",
	}
	c.AddCommand(
		newPatternsSaveCmd(a),
		newPatternsLoadCmd(a),
		newPatternsListCmd(a),
		newPatternsClearCmd(a),
		newPatternsHistoryCmd(a),
	)
	return c
}

func newPatternsSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME FILE",
		Short: "Save a pattern file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, warnings, err := pattern.Load(args[1])
			if err != nil {
				return err
			}
			a.warnAll(args[1], warnings)
			points = pattern.Optimize(points)
			return a.withStore(func(st *store.Store) error {
				if err := st.SavePattern(cmd.Context(), args[0], points, a.deps.Now()); err != nil {
					return err
				}
				if err := st.AddHistory(cmd.Context(), "save: "+args[0], a.deps.Now()); err != nil {
					a.log.Warn("failed to record history", "err", err)
				}
				fmt.Fprintf(a.deps.Stdout, "saved %q (%d days)\n", args[0], len(points))
				return nil
			})
		},
	}
}

func newPatternsLoadCmd(a *app) *cobra.Command {
	var out outputFlags
	c := &cobra.Command{
		Use:   "load NAME",
		Short: "Print a saved pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var points []pattern.Point
			err := a.withStore(func(st *store.Store) error {
				saved, err := st.LoadPattern(cmd.Context(), args[0])
				points = saved.Points
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(out, points)
		},
	}
	out.register(c)
	return c
}

func newPatternsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				saved, err := st.ListPatterns(cmd.Context())
				if err != nil {
					return err
				}
				if len(saved) == 0 {
					fmt.Fprintln(a.deps.Stdout, "no saved patterns")
					return nil
				}
				for _, p := range saved {
					fmt.Fprintf(a.deps.Stdout, "%-20s %4d days %5d commits  weeks %d-%d  %s\n",
						p.Name, p.Stats.TotalDays, p.Stats.TotalCommits,
						p.Stats.WeekRange.Start, p.Stats.WeekRange.End,
						p.SavedAt.Local().Format(time.DateTime))
				}
				return nil
			})
		},
	}
}

func newPatternsClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				n, err := st.ClearPatterns(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(a.deps.Stdout, "deleted %d patterns\n", n)
				return nil
			})
		},
	}
}

func newPatternsHistoryCmd(a *app) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recent actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				entries, err := st.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(a.deps.Stdout, "%s  %s\n", e.At.Local().Format(time.DateTime), e.Action)
				}
				return nil
			})
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries, 0 for all")
	return c
}
