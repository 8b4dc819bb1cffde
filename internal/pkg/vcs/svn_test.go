package vcs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

func newTestSVN(binary string) (*SVNClient, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &SVNClient{
		binary: binary,
		stdin:  strings.NewReader("secret\n"),
		stdout: out,
		stderr: out,
	}, out
}

func TestSVNAvailable(t *testing.T) {
	ok, log := fakeTool(t, "svn", "exit 0")
	client, _ := newTestSVN(ok)
	assert.True(t, client.Available(context.Background()))
	assert.Equal(t, []string{"--version --quiet"}, calls(t, log))

	broken, _ := fakeTool(t, "svn", "exit 1")
	client, _ = newTestSVN(broken)
	assert.False(t, client.Available(context.Background()))

	client, _ = newTestSVN(missingBinary(t))
	assert.False(t, client.Available(context.Background()))
}

func TestSVNDiff(t *testing.T) {
	binary, log := fakeTool(t, "svn", `printf 'Index: a.txt\n+hello\n'`)
	client, _ := newTestSVN(binary)

	diff, err := client.Diff(context.Background(), []string{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "Index: a.txt\n+hello\n", diff)

	diff, err = client.Diff(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, diff)

	assert.Equal(t, []string{"diff a.txt", "diff"}, calls(t, log))
}

func TestSVNDiff_Empty(t *testing.T) {
	binary, _ := fakeTool(t, "svn", `printf '\n'`)
	client, _ := newTestSVN(binary)

	diff, err := client.Diff(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestSVNDiff_NonZeroExit(t *testing.T) {
	binary, _ := fakeTool(t, "svn", `echo "svn: E155007: '/tmp/x' is not a working copy" >&2; exit 1`)
	client, _ := newTestSVN(binary)

	_, err := client.Diff(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrDiffNonZeroExit), "got %v", err)
	assert.Contains(t, err.Error(), "E155007")
}

func TestSVNDiff_ToolMissing(t *testing.T) {
	client, _ := newTestSVN(missingBinary(t))

	_, err := client.Diff(context.Background(), []string{"a.txt"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrDiffExecution), "got %v", err)
}

func TestSVNCommit(t *testing.T) {
	binary, log := fakeTool(t, "svn", "exit 0")
	client, _ := newTestSVN(binary)

	err := client.Commit(context.Background(), "Fix bug", []string{"a.txt", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"commit -m Fix bug a.txt b.txt"}, calls(t, log))
}

func TestSVNCommit_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want apperrors.ErrorCode
	}{
		{
			name: "auth required english",
			body: `echo "svn: E170013: Unable to connect to a repository at URL 'https://svn.example.com/repo'" >&2; exit 1`,
			want: apperrors.ErrAuthRequired,
		},
		{
			name: "auth required chinese",
			body: `echo "svn: E215004: 无法取得密码" >&2; exit 1`,
			want: apperrors.ErrAuthRequired,
		},
		{
			name: "out of date",
			body: `echo "svn: E155011: File 'a.txt' is out of date" >&2; exit 1`,
			want: apperrors.ErrCommitFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary, _ := fakeTool(t, "svn", tt.body)
			client, _ := newTestSVN(binary)

			err := client.Commit(context.Background(), "msg", nil)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.want), "got %v", err)
		})
	}
}

func TestSVNCommit_ToolMissing(t *testing.T) {
	client, _ := newTestSVN(missingBinary(t))

	err := client.Commit(context.Background(), "msg", nil)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCommitFailed), "got %v", err)
}

func TestSVNCommitInteractive(t *testing.T) {
	binary, log := fakeTool(t, "svn", `read pw; echo "got $pw"; exit 0`)
	client, out := newTestSVN(binary)

	err := client.CommitInteractive(context.Background(), "msg", []string{"a.txt"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "got secret")
	assert.Equal(t, []string{"commit -m msg a.txt"}, calls(t, log))
}

func TestSVNCommitInteractive_Failure(t *testing.T) {
	binary, _ := fakeTool(t, "svn", "exit 1")
	client, _ := newTestSVN(binary)

	err := client.CommitInteractive(context.Background(), "msg", nil)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCommitFailed))

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Suggestion, "password")
}

func TestSVNCommitCommand(t *testing.T) {
	client := NewSVNClient()

	tests := []struct {
		message string
		files   []string
		want    string
	}{
		{"Fix bug", nil, `svn commit -m "Fix bug"`},
		{"Fix bug", []string{"a.txt", "src/b.go"}, `svn commit -m "Fix bug" a.txt src/b.go`},
		{`say "hi"`, []string{"my file.txt"}, `svn commit -m "say \"hi\"" "my file.txt"`},
		{"cost $5", nil, `svn commit -m "cost \$5"`},
		{"修复登录问题", nil, `svn commit -m "修复登录问题"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, client.CommitCommand(tt.message, tt.files))
	}
}
