package vcs

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

// SVNBinary is the Subversion client executable.
const SVNBinary = "svn"

// Primary is the version-control tool whose diff seeds generation and
// which performs the authoritative commit.
type Primary interface {
	Available(ctx context.Context) bool
	Diff(ctx context.Context, files []string) (string, error)
	Commit(ctx context.Context, message string, files []string) error
	CommitInteractive(ctx context.Context, message string, files []string) error
	CommitCommand(message string, files []string) string
}

// SVNClient implements Primary using the svn command-line client.
type SVNClient struct {
	// workDir is the working directory for svn commands.
	// If empty, uses the current directory.
	workDir string
	binary  string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewSVNClient creates a new SVNClient attached to the process terminal.
func NewSVNClient() *SVNClient {
	return &SVNClient{
		binary: SVNBinary,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewSVNClientWithWorkDir creates a new SVNClient with a specific working directory.
func NewSVNClientWithWorkDir(workDir string) *SVNClient {
	c := NewSVNClient()
	c.workDir = workDir
	return c
}

// Available reports whether svn can be executed.
func (c *SVNClient) Available(ctx context.Context) bool {
	_, err := run(ctx, c.workDir, c.binary, "--version", "--quiet")
	return err == nil
}

// Diff returns the unified diff of pending changes, restricted to files when
// any are given. An empty string means there is nothing to commit.
func (c *SVNClient) Diff(ctx context.Context, files []string) (string, error) {
	args := append([]string{"diff"}, files...)

	res, err := run(ctx, c.workDir, c.binary, args...)
	if err != nil {
		if !res.started {
			return "", apperrors.Wrap(err, apperrors.ErrDiffExecution, "failed to run svn diff")
		}
		return "", apperrors.NewCommandError(apperrors.ErrDiffNonZeroExit, "svn diff", err, res.stderr)
	}

	if strings.TrimSpace(res.stdout) == "" {
		return "", nil
	}
	return res.stdout, nil
}

// Commit runs svn commit non-interactively.
// A failure caused by missing credentials is reported as ErrAuthRequired.
func (c *SVNClient) Commit(ctx context.Context, message string, files []string) error {
	res, err := run(ctx, c.workDir, c.binary, commitArgs(message, files)...)
	if err == nil {
		return nil
	}
	if !res.started {
		return apperrors.Wrap(err, apperrors.ErrCommitFailed, "failed to run svn commit")
	}

	output := res.combined()
	if ClassifyCommitOutput(output) == FailureAuthRequired {
		return apperrors.NewCommandError(apperrors.ErrAuthRequired, "svn commit", err, output).
			WithSuggestion("svn needs your password; the commit will be retried interactively")
	}
	return apperrors.NewCommandError(apperrors.ErrCommitFailed, "svn commit", err, output)
}

// CommitInteractive runs svn commit with the terminal attached so svn can
// prompt for credentials.
func (c *SVNClient) CommitInteractive(ctx context.Context, message string, files []string) error {
	args := commitArgs(message, files)
	apperrors.LogCommand(c.binary, args)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCommitFailed, "svn commit failed").
			WithSuggestion("Please check your svn password")
	}
	return nil
}

// CommitCommand returns the svn commit command line for manual execution.
func (c *SVNClient) CommitCommand(message string, files []string) string {
	cmd := "svn commit -m " + quoteDouble(message)
	if len(files) > 0 {
		cmd += " " + joinArgs(files)
	}
	return cmd
}

func commitArgs(message string, files []string) []string {
	return append([]string{"commit", "-m", message}, files...)
}
