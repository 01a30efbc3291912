package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/fchimpan/gh-kusa-painter/internal/analysis"
	"github.com/fchimpan/gh-kusa-painter/internal/github"
	"github.com/fchimpan/gh-kusa-painter/internal/glyph"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
	"github.com/fchimpan/gh-kusa-painter/internal/store"
)

type harness struct {
	deps   Deps
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	git    *recordingRunner
}

type recordingRunner struct {
	calls [][]string
}

func (r *recordingRunner) Run(_ context.Context, _ string, _ []string, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	return "", nil
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		dir:    t.TempDir(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		git:    &recordingRunner{},
	}
	h.deps = Deps{
		FetchContributionYear: func(ctx context.Context, login string, year int) (string, github.Calendar, error) {
			t.Fatalf("FetchContributionYear should not be called in this test")
			return "", github.Calendar{}, nil
		},
		FetchAccount: func(ctx context.Context, login string) (github.Account, error) {
			return github.Account{}, errors.New("offline")
		},
		HasCredentials: func() bool { return false },
		OpenStore:      store.Open,
		RunPreview: func(title string, p mapping.Preview, confirmable bool) (bool, error) {
			t.Fatalf("RunPreview should not be called in this test")
			return false, nil
		},
		RunDashboard: func(login string, r analysis.Result, cal mapping.Preview, s []analysis.Suggestion) error {
			t.Fatalf("RunDashboard should not be called in this test")
			return nil
		},
		GitRunner: h.git,
		Now:       func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		Stdin:     strings.NewReader(""),
		Stdout:    h.stdout,
		Stderr:    h.stderr,
	}
	return h
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	c := NewRootCmd(h.deps)
	base := []string{
		"--config", filepath.Join(h.dir, "config.toml"),
		"--db", filepath.Join(h.dir, "kusa.db"),
	}
	c.SetArgs(append(base, args...))
	return c.Execute()
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

func decodePoints(t *testing.T, data []byte) []pattern.Point {
	t.Helper()
	var points []pattern.Point
	if err := json.Unmarshal(data, &points); err != nil {
		t.Fatalf("decode points: %v\n%s", err, data)
	}
	return points
}

func TestText_PrintsPatternJSON(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if err := h.run("text", "HI", "--year", "2023", "--start", "10", "--intensity", "2"); err != nil {
		t.Fatalf("text: %v", err)
	}
	points := decodePoints(t, h.stdout.Bytes())
	if len(points) == 0 {
		t.Fatalf("expected points")
	}
	for _, p := range points {
		if p.Week < 10 || p.Week > 20 || p.Commits != 2 {
			t.Fatalf("unexpected point %+v", p)
		}
	}
	if !slices.IsSortedFunc(points, pattern.Compare) {
		t.Fatalf("output must be ordered by week then day")
	}
}

func TestText_StrictOverflow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	err := h.run("text", "VERYLONGTEXT", "--year", "2023", "--start", "50", "--strict")
	if !glyph.IsTextTooLong(err) {
		t.Fatalf("expected TextTooLongError, got %v", err)
	}
}

func TestShape_MergeInto(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	target := h.path("art.json")
	if err := pattern.Save(target, []pattern.Point{{Week: 1, Day: 1, Commits: 9}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := h.run("shape", "square", "--year", "2023", "--start", "20", "--merge-into", target); err != nil {
		t.Fatalf("shape: %v", err)
	}
	points, _, err := pattern.Load(target)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(points) != 50 || points[0] != (pattern.Point{Week: 1, Day: 1, Commits: 9}) {
		t.Fatalf("expected square merged after existing point, got %d points, first %+v", len(points), points[0])
	}
}

func TestCell_WholeWeekSkipsPadding(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	// 2024 starts on a Monday, so week 0 has no Sunday.
	if err := h.run("cell", "--year", "2024", "--week", "0", "--day", "-1", "--commits", "4"); err != nil {
		t.Fatalf("cell: %v", err)
	}
	if points := decodePoints(t, h.stdout.Bytes()); len(points) != 6 || points[0].Day != 1 {
		t.Fatalf("unexpected points %+v", points)
	}
	if err := h.run("cell", "--year", "2024", "--week", "0", "--day", "0"); err == nil {
		t.Fatalf("expected error for a padding cell")
	}
}

func TestEffect_SeededRandomIsStable(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	args := []string{"effect", "random", "--year", "2023", "--seed", "5", "--count", "12"}
	if err := h.run(args...); err != nil {
		t.Fatalf("effect: %v", err)
	}
	first := decodePoints(t, h.stdout.Bytes())
	if err := h.run(args...); err != nil {
		t.Fatalf("effect: %v", err)
	}
	second := decodePoints(t, h.stdout.Bytes())
	if len(first) != 12 || !slices.Equal(first, second) {
		t.Fatalf("expected identical 12-point patterns, got %d and %d", len(first), len(second))
	}
}

func TestPreview_ASCII(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	file := h.path("p.json")
	if err := pattern.Save(file, []pattern.Point{{Week: 3, Day: 2, Commits: 1}, {Week: 40, Day: 2, Commits: 4}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	pngPath := h.path("p.png")
	if err := h.run("preview", file, "--year", "2025", "--mode", "ascii", "--png", pngPath); err != nil {
		t.Fatalf("preview: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"Legend:", "░░", "××", "Future commits (skipped): 4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if _, err := os.Stat(pngPath); err != nil {
		t.Fatalf("expected png export: %v", err)
	}
}

func TestPreview_OverCalendar(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	var fetched bool
	h.deps.HasCredentials = func() bool { return true }
	h.deps.FetchContributionYear = func(ctx context.Context, login string, year int) (string, github.Calendar, error) {
		fetched = true
		return "octocat", github.MockCalendar(year, 1), nil
	}
	file := h.path("p.json")
	if err := pattern.Save(file, []pattern.Point{{Week: 3, Day: 2, Commits: 4}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := h.run("preview", file, "--year", "2024", "--calendar"); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !fetched || !strings.Contains(h.stdout.String(), "Legend:") {
		t.Fatalf("expected calendar fetch and a rendered grid, fetched=%v\n%s", fetched, h.stdout.String())
	}
}

func TestAnalyze_PrintsAuthHintOnAuthError(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.deps.HasCredentials = func() bool { return true }
	h.deps.FetchContributionYear = func(ctx context.Context, login string, year int) (string, github.Calendar, error) {
		return "", github.Calendar{}, &github.AuthError{Message: "GitHub rejected the token"}
	}
	if err := h.run("analyze"); err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(h.stderr.String(), "hint: set GITHUB_TOKEN") {
		t.Fatalf("expected auth hint, got stderr=%q", h.stderr.String())
	}
}

func TestAnalyze_NoHintOnUserNotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.deps.HasCredentials = func() bool { return true }
	h.deps.FetchContributionYear = func(ctx context.Context, login string, year int) (string, github.Calendar, error) {
		return "", github.Calendar{}, &github.UserNotFoundError{Login: login}
	}
	err := h.run("analyze", "--user", "no_such_user")
	if err == nil || !strings.Contains(err.Error(), `user "no_such_user" not found`) {
		t.Fatalf("expected user-not-found error, got %v", err)
	}
	if strings.Contains(h.stderr.String(), "hint:") {
		t.Fatalf("did not expect auth hint, got stderr=%q", h.stderr.String())
	}
}

func TestAnalyze_MockJSONAndConfigYear(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if err := os.WriteFile(h.path("config.toml"), []byte("[pattern]\nyear = 2022\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var out struct {
		Result struct{ Year int }
	}

	if err := h.run("analyze", "--mock", "--json"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &out); err != nil || out.Result.Year != 2022 {
		t.Fatalf("expected config year 2022, got %d (err %v)", out.Result.Year, err)
	}

	if err := h.run("analyze", "--mock", "--json", "--year", "2021"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &out); err != nil || out.Result.Year != 2021 {
		t.Fatalf("flag must win over config, got %d (err %v)", out.Result.Year, err)
	}
}

func TestAnalyze_Compare(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if err := h.run("analyze", "--mock", "--user", "octocat", "--year", "2024", "--compare", "--text", "hi"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"Contribution analysis for octocat (2024)", "Compared with 2023:", "Monthly trend:", "Suggestions:", "- Busiest day: 2024-"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestAnalyze_YearsFallback(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if err := h.run("analyze", "--years"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got := strings.TrimSpace(h.stdout.String()); got != "2025 2024 2023" {
		t.Fatalf("unexpected years %q", got)
	}
}

func writeSample(t *testing.T, h *harness) string {
	t.Helper()
	file := h.path("commit.json")
	points := []pattern.Point{
		{Week: 1, Day: 3, Commits: 2},
		{Week: 2, Day: 4, Commits: 1},
		{Week: 50, Day: 2, Commits: 3}, // December 2025, after now
	}
	if err := pattern.Save(file, points); err != nil {
		t.Fatalf("save: %v", err)
	}
	return file
}

func TestCommit_DryRun(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if err := h.run("commit", writeSample(t, h), "--dry-run"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, "3 commits on 2 days in 2025 (3 future commits skipped)") {
		t.Fatalf("unexpected plan header:\n%s", out)
	}
	if !strings.Contains(out, "feat: w1d3 commit 2") {
		t.Fatalf("expected commit messages in:\n%s", out)
	}
	if len(h.git.calls) != 0 {
		t.Fatalf("dry run must not run git, got %v", h.git.calls)
	}
}

func TestCommit_AppliesAndRecordsHistory(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	repo := h.path("repo")
	if err := os.MkdirAll(repo, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := h.run("commit", writeSample(t, h), "--repo", repo, "--yes", "--push", "--message-prefix", "art:"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	// add + commit for each of the 3 commits, then push.
	if len(h.git.calls) != 7 || h.git.calls[6][0] != "push" {
		t.Fatalf("unexpected git calls %v", h.git.calls)
	}
	if msg := h.git.calls[1][2]; msg != "art: w1d3 commit 1" {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.Contains(h.stdout.String(), "created 3 commits and pushed") {
		t.Fatalf("unexpected output:\n%s", h.stdout.String())
	}
	if _, err := os.Stat(filepath.Join(repo, "contribution-tracker.json")); err != nil {
		t.Fatalf("expected tracker file: %v", err)
	}

	if err := h.run("patterns", "history"); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "commit: 3 of 3 commits for 2025") {
		t.Fatalf("expected history entry, got:\n%s", h.stdout.String())
	}
}

func TestCommit_PromptDeclined(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.deps.Stdin = strings.NewReader("n\n")
	if err := h.run("commit", writeSample(t, h), "--repo", h.dir); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(h.git.calls) != 0 || !strings.Contains(h.stdout.String(), "cancelled") {
		t.Fatalf("expected cancel without git calls, got %v\n%s", h.git.calls, h.stdout.String())
	}
}

func TestCommit_InteractiveConfirm(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	var asked bool
	h.deps.RunPreview = func(title string, p mapping.Preview, confirmable bool) (bool, error) {
		asked = true
		if !confirmable || p.Year != 2025 {
			t.Fatalf("unexpected preview call title=%q confirmable=%v year=%d", title, confirmable, p.Year)
		}
		return true, nil
	}
	if err := h.run("commit", writeSample(t, h), "--repo", h.dir, "-i"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !asked || len(h.git.calls) != 6 {
		t.Fatalf("expected confirmed run, asked=%v calls=%d", asked, len(h.git.calls))
	}
}

func TestCommit_RefusesYearBeforeAccount(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.deps.HasCredentials = func() bool { return true }
	h.deps.FetchAccount = func(ctx context.Context, login string) (github.Account, error) {
		return github.Account{Login: "octocat", CreatedAt: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)}, nil
	}
	err := h.run("commit", writeSample(t, h), "--year", "2019", "--dry-run")
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected account-age refusal, got %v", err)
	}
	if err := h.run("commit", writeSample(t, h), "--year", "2019", "--dry-run", "--force"); err != nil {
		t.Fatalf("--force must continue, got %v", err)
	}
}

func TestPatterns_SaveLoadListClear(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	file := writeSample(t, h)
	if err := h.run("patterns", "save", "wave", file); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := h.run("patterns", "list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "wave") {
		t.Fatalf("expected saved pattern in list:\n%s", h.stdout.String())
	}
	if err := h.run("patterns", "load", "wave"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if points := decodePoints(t, h.stdout.Bytes()); len(points) != 3 {
		t.Fatalf("unexpected loaded points %+v", points)
	}
	if err := h.run("stats", "--pattern", "wave"); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "commits:   6") {
		t.Fatalf("unexpected stats:\n%s", h.stdout.String())
	}
	if err := h.run("patterns", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := h.run("patterns", "load", "wave"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	bad := h.path("bad.json")
	if err := os.WriteFile(bad, []byte(`[{"week": 0, "day": 9, "commits": 1}, {"week": 3, "day": 1, "commits": 25}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := h.run("validate", bad); err == nil {
		t.Fatalf("expected validation failure")
	}
	if out := h.stdout.String(); !strings.Contains(out, "error:") || !strings.Contains(out, "warning:") {
		t.Fatalf("expected errors and warnings, got:\n%s", out)
	}
}

func TestConfig_WritesTemplate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if err := h.run("config"); err != nil {
		t.Fatalf("config: %v", err)
	}
	if _, err := os.Stat(h.path("config.toml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if err := h.run("config"); err == nil {
		t.Fatalf("existing config must not be overwritten")
	}
}
