// Package main is the entry point for the commit-crafter CLI application.
// commit-crafter drafts Subversion commit messages with an OpenAI-compatible
// chat API and commits them after interactive review.
package main

import (
	"fmt"
	"os"

	"github.com/commitcrafter/commitcrafter/internal/cmd"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
