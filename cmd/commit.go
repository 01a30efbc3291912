package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
	"github.com/fchimpan/gh-kusa-painter/internal/render"
	"github.com/fchimpan/gh-kusa-painter/internal/schedule"
)

func newCommitCmd(a *app) *cobra.Command {
	var (
		name        string
		push        bool
		dryRun      bool
		force       bool
		yes         bool
		interactive bool
	)
	c := &cobra.Command{
		Use:   "commit [FILE]",
		Short: "Write backdated commits for a pattern into a git repository",
		Long: "Write backdated commits for a pattern into a git repository. Every commit\n" +
			"rewrites the tracker file and is dated at midnight plus the interval times\n" +
			"its index. Days after today are skipped.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			points, err := a.loadPoints(cmd, path, name)
			if err != nil {
				return err
			}
			if a.intervalMinutes < 1 {
				return fmt.Errorf("--interval must be >= 1")
			}

			if err := a.checkAccountAge(cmd, force); err != nil {
				return err
			}

			g := grid.New(a.year)
			now := a.deps.Now()
			plan := schedule.Build(g, points, now, time.Duration(a.intervalMinutes)*time.Minute)
			if plan.Invalid > 0 {
				a.log.Warn("points outside the year are skipped", "count", plan.Invalid, "year", a.year)
			}
			w := a.deps.Stdout
			fmt.Fprintf(w, "%d commits on %d days in %d", len(plan.Commits), plan.Days(), a.year)
			if plan.Skipped > 0 {
				fmt.Fprintf(w, " (%d future commits skipped)", plan.Skipped)
			}
			fmt.Fprintln(w)

			if dryRun {
				for _, cm := range plan.Commits {
					fmt.Fprintf(w, "%s  %s\n", cm.Time.Format(time.RFC3339), schedule.Message(a.messagePrefix, cm))
				}
				_, err := schedule.Apply(ctx, plan, schedule.Options{DryRun: true, Logger: a.log})
				return err
			}
			if len(plan.Commits) == 0 {
				return fmt.Errorf("nothing to commit")
			}

			if !yes {
				ok, err := a.confirm(points, interactive)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(w, "cancelled")
					return nil
				}
			}

			res, err := schedule.Apply(ctx, plan, schedule.Options{
				Repo:          a.repo,
				TrackerFile:   a.trackerFile,
				MessagePrefix: a.messagePrefix,
				Push:          push,
				Runner:        a.deps.GitRunner,
				Logger:        a.log,
				Progress:      a.deps.Stderr,
			})
			a.recordHistory(cmd, fmt.Sprintf("commit: %d of %d commits for %d (run %s)", res.Committed, len(plan.Commits), a.year, res.RunID))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "created %d commits", res.Committed)
			if res.Pushed {
				fmt.Fprint(w, " and pushed")
			}
			fmt.Fprintln(w)
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&name, "pattern", "p", "", "use a saved pattern instead of a file")
	f.StringVar(&a.repo, "repo", ".", "git repository to commit into")
	f.StringVar(&a.trackerFile, "tracker-file", schedule.DefaultTrackerFile, "file rewritten by every commit, relative to the repository")
	f.StringVar(&a.messagePrefix, "message-prefix", schedule.DefaultMessagePrefix, "commit message prefix")
	f.IntVar(&a.intervalMinutes, "interval", int(schedule.DefaultInterval/time.Minute), "minutes between commits of the same day")
	f.BoolVar(&push, "push", false, "run git push afterwards")
	f.BoolVar(&dryRun, "dry-run", false, "print the plan without touching the repository")
	f.BoolVar(&force, "force", false, "continue even if the year predates the GitHub account")
	f.BoolVar(&yes, "yes", false, "do not ask for confirmation")
	f.BoolVarP(&interactive, "interactive", "i", false, "confirm in the full-screen preview")
	return c
}

// checkAccountAge refuses years before the account was created unless forced.
// Lookup failures are logged and ignored.
func (a *app) checkAccountAge(cmd *cobra.Command, force bool) error {
	if a.deps.FetchAccount == nil || a.deps.HasCredentials == nil || !a.deps.HasCredentials() {
		return nil
	}
	acct, err := a.deps.FetchAccount(cmd.Context(), a.user)
	if err != nil {
		a.log.Warn("could not check account age", "err", err)
		return nil
	}
	if !acct.PredatesAccount(a.year) {
		return nil
	}
	msg := fmt.Sprintf("the account %s was opened in %d; commits dated %d look suspicious", acct.Login, acct.CreatedYear(), a.year)
	if !force {
		return fmt.Errorf("%s (use --force to continue anyway)", msg)
	}
	a.log.Warn(msg)
	return nil
}

func (a *app) confirm(points []pattern.Point, interactive bool) (bool, error) {
	p := mapping.FromPoints(grid.New(a.year), points, a.deps.Now())
	if interactive {
		if a.deps.RunPreview == nil {
			return false, fmt.Errorf("deps.RunPreview is nil")
		}
		return a.deps.RunPreview(fmt.Sprintf("commit %d", a.year), p, true)
	}
	if err := render.WriteSummary(a.deps.Stdout, render.Summarize(p)); err != nil {
		return false, err
	}
	fmt.Fprint(a.deps.Stdout, "\nContinue? [y/N] ")
	if a.deps.Stdin == nil {
		return false, nil
	}
	line, err := bufio.NewReader(a.deps.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
