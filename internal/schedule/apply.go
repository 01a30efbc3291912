package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/fchimpan/gh-kusa-painter/internal/logging"
)

// Options configures Apply. Zero values fall back to the package defaults.
type Options struct {
	Repo          string
	TrackerFile   string
	MessagePrefix string
	Push          bool
	DryRun        bool
	Runner        Runner
	Logger        *slog.Logger
	// Progress receives a progress bar when set.
	Progress io.Writer
	// RunID is stamped into every tracker write. Generated when empty.
	RunID string
}

// Result reports what Apply did.
type Result struct {
	RunID     string
	Committed int
	Pushed    bool
}

// TrackerEntry is the JSON document rewritten before every commit.
type TrackerEntry struct {
	Date   string `json:"date"`
	Week   int    `json:"week"`
	Day    int    `json:"day"`
	Commit int    `json:"commit"`
	Total  int    `json:"total"`
	Run    string `json:"run"`
}

func (o Options) withDefaults() Options {
	if o.Repo == "" {
		o.Repo = "."
	}
	if o.TrackerFile == "" {
		o.TrackerFile = DefaultTrackerFile
	}
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	o.Logger = logging.OrNop(o.Logger)
	return o
}

// Apply writes the plan's commits one at a time in plan order. Each commit
// rewrites the tracker file, stages it and commits with author and committer
// dates set to the commit time. A failure stops the run; commits already
// made stay in the repository and are counted in Result.
func Apply(ctx context.Context, plan Plan, opts Options) (Result, error) {
	opts = opts.withDefaults()
	res := Result{RunID: opts.RunID}
	log := opts.Logger.With("run", opts.RunID)

	if opts.DryRun {
		log.Info("dry run, no commits written", "commits", len(plan.Commits), "skipped", plan.Skipped)
		return res, nil
	}
	if len(plan.Commits) == 0 {
		log.Info("nothing to commit", "skipped", plan.Skipped)
		return res, nil
	}

	trackerPath := opts.TrackerFile
	if !filepath.IsAbs(trackerPath) {
		trackerPath = filepath.Join(opts.Repo, trackerPath)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(plan.Commits),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("committing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, c := range plan.Commits {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		stamp := c.Time.Format(time.RFC3339)
		entry := TrackerEntry{Date: stamp, Week: c.Week, Day: c.Day, Commit: c.Index, Total: c.Total, Run: opts.RunID}
		if err := writeTracker(trackerPath, entry); err != nil {
			return res, err
		}
		if err := runGit(ctx, opts.Runner, opts.Repo, nil, "add", opts.TrackerFile); err != nil {
			return res, err
		}
		env := []string{"GIT_AUTHOR_DATE=" + stamp, "GIT_COMMITTER_DATE=" + stamp}
		msg := Message(opts.MessagePrefix, c)
		if err := runGit(ctx, opts.Runner, opts.Repo, env, "commit", "-m", msg, "--date", stamp); err != nil {
			return res, err
		}
		res.Committed++
		log.Debug("commit written", "week", c.Week, "day", c.Day, "commit", c.Index, "date", stamp)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if opts.Push {
		if err := runGit(ctx, opts.Runner, opts.Repo, nil, "push"); err != nil {
			return res, err
		}
		res.Pushed = true
	}
	log.Info("commits written", "committed", res.Committed, "skipped", plan.Skipped, "pushed", res.Pushed)
	return res, nil
}

func writeTracker(path string, entry TrackerEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tracker: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write tracker: %w", err)
	}
	return nil
}
