package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/analysis"
	"github.com/fchimpan/gh-kusa-painter/internal/config"
	"github.com/fchimpan/gh-kusa-painter/internal/github"
	"github.com/fchimpan/gh-kusa-painter/internal/logging"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
	"github.com/fchimpan/gh-kusa-painter/internal/schedule"
	"github.com/fchimpan/gh-kusa-painter/internal/store"
)

type Deps struct {
	FetchContributionYear func(ctx context.Context, login string, year int) (string, github.Calendar, error)
	FetchAccount          func(ctx context.Context, login string) (github.Account, error)
	HasCredentials        func() bool
	OpenStore             func(path string) (*store.Store, error)
	RunPreview            func(title string, p mapping.Preview, confirmable bool) (bool, error)
	RunDashboard          func(login string, r analysis.Result, cal mapping.Preview, suggestions []analysis.Suggestion) error
	GitRunner             schedule.Runner
	Now                   func() time.Time
	Stdin                 io.Reader
	Stdout                io.Writer
	Stderr                io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		FetchContributionYear: github.FetchContributionYear,
		FetchAccount:          github.FetchAccount,
		HasCredentials:        github.HasCredentials,
		OpenStore:             store.Open,
		RunPreview:            defaultRunPreview,
		RunDashboard:          defaultRunDashboard,
		GitRunner:             schedule.ExecRunner{},
		Now:                   time.Now,
		Stdin:                 os.Stdin,
		Stdout:                os.Stdout,
		Stderr:                os.Stderr,
	}
}

// app carries the resolved global settings shared by every subcommand.
type app struct {
	deps Deps
	log  *slog.Logger
	cfg  config.FileConfig

	configPath string
	dbPath     string
	verbose    bool
	year       int
	user       string
	intensity  int
	mode       string

	repo            string
	trackerFile     string
	messagePrefix   string
	intervalMinutes int
}

func NewRootCmd(deps Deps) *cobra.Command {
	a := &app{deps: deps, log: logging.Nop()}

	c := &cobra.Command{
		Use:          "kusa-painter",
		Short:        "Paint text and shapes onto your GitHub contribution graph",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := c.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	pf.StringVar(&a.dbPath, "db", config.DefaultDBPath(), "path to the SQLite database of saved patterns")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.IntVarP(&a.year, "year", "y", 0, "target year (default: current year)")
	pf.StringVarP(&a.user, "user", "u", "", "GitHub username (default: authenticated user)")

	c.AddCommand(
		newTextCmd(a),
		newShapeCmd(a),
		newEffectCmd(a),
		newCellCmd(a),
		newMergeCmd(a),
		newValidateCmd(a),
		newStatsCmd(a),
		newPreviewCmd(a),
		newAnalyzeCmd(a),
		newCommitCmd(a),
		newPatternsCmd(a),
		newConfigCmd(a),
	)

	c.SetIn(deps.Stdin)
	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}

// setup loads the config file, applies it under the command-line flags and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.deps.Now == nil {
		return fmt.Errorf("deps.Now is nil")
	}
	a.log = logging.New(a.deps.Stderr, a.verbose)

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	applyStringConfig(cmd, "user", &a.user, cfg.GitHub.User)
	applyIntConfig(cmd, "year", &a.year, cfg.Pattern.Year)
	applyIntConfig(cmd, "intensity", &a.intensity, cfg.Pattern.Intensity)
	applyStringConfig(cmd, "mode", &a.mode, cfg.Pattern.Mode)
	applyStringConfig(cmd, "repo", &a.repo, cfg.Commit.Repo)
	applyStringConfig(cmd, "tracker-file", &a.trackerFile, cfg.Commit.TrackerFile)
	applyStringConfig(cmd, "message-prefix", &a.messagePrefix, cfg.Commit.MessagePrefix)
	applyIntConfig(cmd, "interval", &a.intervalMinutes, cfg.Commit.IntervalMinutes)

	if a.user == "" {
		a.user = config.GitHubUser()
	}
	if a.year == 0 {
		a.year = a.deps.Now().Year()
	}
	if a.year < 2008 || a.year > a.deps.Now().Year()+1 {
		return fmt.Errorf("--year %d is out of range", a.year)
	}
	a.log.Debug("settings resolved", "year", a.year, "user", a.user, "config", a.configPath)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// githubErr prints a login hint for credential problems only.
func (a *app) githubErr(err error) error {
	if github.IsAuthError(err) {
		fmt.Fprintln(a.deps.Stderr, "hint: set GITHUB_TOKEN or GH_TOKEN, or run `gh auth login`")
	}
	return err
}

func (a *app) warnAll(msg string, warnings []string) {
	for _, w := range warnings {
		a.log.Warn(msg, "detail", w)
	}
}
