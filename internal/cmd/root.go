// Package cmd contains the CLI command definitions for commit-crafter.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the commit-crafter CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commit-crafter",
		Short: "AI-assisted commit message generator for Subversion",
		Long: `commit-crafter reads the pending changes of a Subversion working copy,
asks an OpenAI-compatible chat API to draft a commit message, and lets you
accept, regenerate or print it before committing.

When the working copy is also a Git work tree, the same commit can be
recorded in Git after the Subversion commit succeeds.

Configuration is read from ~/.config/commit_crafter/config.toml
(%APPDATA%\commit_crafter\config.toml on Windows).`,
		Version: version,
	}

	rootCmd.SetVersionTemplate(`commit-crafter {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(NewCommitCmd())

	return rootCmd
}
