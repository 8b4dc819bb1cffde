package vcs

import (
	"context"
	"strings"

	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

// GitBinary is the Git client executable.
const GitBinary = "git"

// Secondary is the version-control tool a successful primary commit is
// mirrored into.
type Secondary interface {
	IsRepository(ctx context.Context) bool
	Commit(ctx context.Context, message string, files []string) error
	CommitCommands(message string, files []string) []string
}

// GitClient implements Secondary using the git command-line client.
type GitClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
	binary  string
}

// NewGitClient creates a new GitClient.
func NewGitClient() *GitClient {
	return &GitClient{binary: GitBinary}
}

// NewGitClientWithWorkDir creates a new GitClient with a specific working directory.
func NewGitClientWithWorkDir(workDir string) *GitClient {
	return &GitClient{workDir: workDir, binary: GitBinary}
}

// IsRepository reports whether git is installed and the working directory
// is inside a Git work tree. A missing git is not an error.
func (c *GitClient) IsRepository(ctx context.Context) bool {
	if _, err := run(ctx, c.workDir, c.binary, "--version"); err != nil {
		apperrors.Debug("git not available, skipping git operations")
		return false
	}

	res, err := run(ctx, c.workDir, c.binary, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(res.stdout) == "true"
}

// Commit stages files (or everything when files is empty) and commits them.
// A commit with no changes is reported as ErrNothingToCommit.
func (c *GitClient) Commit(ctx context.Context, message string, files []string) error {
	res, err := run(ctx, c.workDir, c.binary, addArgs(files)...)
	if err != nil {
		if !res.started {
			return apperrors.Wrap(err, apperrors.ErrCommitFailed, "failed to run git add")
		}
		return apperrors.NewCommandError(apperrors.ErrCommitFailed, "git add", err, res.combined())
	}

	res, err = run(ctx, c.workDir, c.binary, "commit", "-m", message)
	if err != nil {
		if !res.started {
			return apperrors.Wrap(err, apperrors.ErrCommitFailed, "failed to run git commit")
		}
		output := res.combined()
		if ClassifyCommitOutput(output) == FailureNothingToCommit {
			return apperrors.NewCommandError(apperrors.ErrNothingToCommit, "git commit", err, output)
		}
		return apperrors.NewCommandError(apperrors.ErrCommitFailed, "git commit", err, output)
	}
	return nil
}

// CommitCommands returns the git add and git commit command lines Commit runs.
func (c *GitClient) CommitCommands(message string, files []string) []string {
	add := "git add ."
	if len(files) > 0 {
		add = "git add " + joinArgs(files)
	}
	return []string{add, "git commit -m " + quoteDouble(message)}
}

func addArgs(files []string) []string {
	if len(files) == 0 {
		return []string{"add", "."}
	}
	return append([]string{"add"}, files...)
}
