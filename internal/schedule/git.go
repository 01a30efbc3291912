package schedule

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes git inside a repository. env entries are appended to the
// process environment.
type Runner interface {
	Run(ctx context.Context, repo string, env []string, args ...string) (string, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, repo string, env []string, args ...string) (string, error) {
	all := append([]string{"-C", repo}, args...)
	cmd := exec.CommandContext(ctx, "git", all...)
	cmd.Env = append(os.Environ(), env...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return strings.TrimSpace(out.String()), err
}

// GitError is returned when a git invocation fails.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Output    string
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GitError) Unwrap() error { return e.Err }

func IsGitError(err error) bool {
	var target *GitError
	return errors.As(err, &target)
}

func runGit(ctx context.Context, r Runner, repo string, env []string, args ...string) error {
	out, err := r.Run(ctx, repo, env, args...)
	if err != nil {
		return &GitError{Operation: args[0], Args: args, Err: err, Output: out}
	}
	return nil
}
