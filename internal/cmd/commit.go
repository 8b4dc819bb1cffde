package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/commitcrafter/commitcrafter/internal/app"
	"github.com/commitcrafter/commitcrafter/internal/pkg/ai"
	"github.com/commitcrafter/commitcrafter/internal/pkg/config"
	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
	"github.com/commitcrafter/commitcrafter/internal/pkg/ui"
	"github.com/commitcrafter/commitcrafter/internal/pkg/vcs"
)

// Constructors are variables to allow mocking in tests.
var (
	newConfigManager = func() (config.Manager, error) { return config.NewManager("") }
	newPrimary       = func() vcs.Primary { return vcs.NewSVNClient() }
	newSecondary     = func() vcs.Secondary { return vcs.NewGitClient() }
	newProvider      = ai.NewProvider
	newUIManager     = func(colorEnabled bool) ui.Manager { return ui.NewDefaultManager(colorEnabled) }
)

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit [paths...]",
		Short: "Generate a commit message and commit",
		Long: `Generate a commit message for the pending Subversion changes and commit
after you confirm it.

Without paths every change in the working copy is included; with paths only
those files or directories are diffed and committed.

At the prompt:
  y / Enter  commit with the message
  s          print the svn commit command and exit
  r          regenerate, optionally with an extra instruction
  n          exit without committing

Examples:
  commit-crafter commit
  commit-crafter commit src/main.c docs/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, args)
		},
	}
}

// runCommit executes the commit command logic. Problems with tools,
// configuration or the API are shown to the user and do not fail the command.
func runCommit(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	primary := newPrimary()
	if !primary.Available(ctx) {
		newUIManager(true).ShowError(apperrors.NewToolMissingError(vcs.SVNBinary,
			vcs.InstallInstructions(vcs.SVNBinary).String()))
		return nil
	}

	cfgMgr, err := newConfigManager()
	if err != nil {
		newUIManager(true).ShowError(err)
		return nil
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		apperrors.Debug("config path: %s", cfgMgr.GetConfigPath())
		newUIManager(true).ShowError(err)
		return nil
	}

	apperrors.SetVerbose(cfg.Verbose)
	apperrors.Debug("config: %s", cfgMgr.GetConfigPath())
	apperrors.Debug("endpoint: %s, model: %s, language: %s", cfg.OpenAIURL, cfg.OpenAIModel, cfg.UserLanguage)
	apperrors.Debug("API key: %s", config.MaskAPIKey(cfg.OpenAIAPIKey))

	uiMgr := newUIManager(cfg.ColorEnabled)

	provider, err := newProvider(cfg)
	if err != nil {
		uiMgr.ShowError(apperrors.NewAIProviderError("openai", err))
		return nil
	}

	service := app.NewCommitService(primary, newSecondary(), provider, uiMgr)
	return service.Run(ctx, files)
}
