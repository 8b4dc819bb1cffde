// Package vcs runs the Subversion and Git command-line clients for commit-crafter.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

// result holds the captured output of a finished command.
type result struct {
	stdout string
	stderr string
	// started is false when the binary could not be launched at all.
	started bool
}

// combined returns stdout and stderr joined for classification and display.
func (r result) combined() string {
	switch {
	case r.stdout == "":
		return r.stderr
	case r.stderr == "":
		return r.stdout
	default:
		return r.stdout + "\n" + r.stderr
	}
}

// run executes binary with args in workDir and captures both output streams.
// The returned error is nil only for a zero exit status.
func run(ctx context.Context, workDir, binary string, args ...string) (result, error) {
	apperrors.LogCommand(binary, args)

	cmd := exec.CommandContext(ctx, binary, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := result{
		stdout:  stdout.String(),
		stderr:  stderr.String(),
		started: err == nil || isExitError(err),
	}
	if err != nil {
		apperrors.Debug("%s %s: %v", binary, strings.Join(args, " "), err)
	}
	return res, err
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

// QuoteArg quotes s for display as a single POSIX shell word.
func QuoteArg(s string) string {
	if s == "" {
		return `""`
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return quoteDouble(s)
}

// quoteDouble always wraps s in double quotes, escaping what the shell
// would otherwise expand.
func quoteDouble(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$', '`':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=@,+%", r):
		return false
	case r > 127:
		return false
	}
	return true
}

func joinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = QuoteArg(a)
	}
	return strings.Join(quoted, " ")
}
