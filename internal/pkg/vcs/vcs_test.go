package vcs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeTool writes an executable shell script standing in for svn or git.
// Every invocation appends its arguments, one call per line, to the returned log.
func fakeTool(t *testing.T, name, body string) (binary, logPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	dir := t.TempDir()
	logPath = filepath.Join(dir, name+".log")
	binary = filepath.Join(dir, name)

	script := "#!/bin/sh\n" +
		"echo \"$@\" >> '" + logPath + "'\n" +
		body + "\n"
	if err := os.WriteFile(binary, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake %s: %v", name, err)
	}
	return binary, logPath
}

// calls returns the logged invocations of a fake tool.
func calls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func missingBinary(t *testing.T) string {
	return filepath.Join(t.TempDir(), "does-not-exist")
}
