// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/commitcrafter/commitcrafter/internal/pkg/ai"
	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
	"github.com/commitcrafter/commitcrafter/internal/pkg/ui"
	"github.com/commitcrafter/commitcrafter/internal/pkg/vcs"
)

// State is a step of the commit loop.
type State int

const (
	StateCollectingDiff State = iota
	StateGeneratingMessage
	StateAwaitingUserChoice
	StateCommitting
	StateShowingCommand
	StateRegenerating
	StateExiting
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateCollectingDiff:
		return "collecting-diff"
	case StateGeneratingMessage:
		return "generating-message"
	case StateAwaitingUserChoice:
		return "awaiting-user-choice"
	case StateCommitting:
		return "committing"
	case StateShowingCommand:
		return "showing-command"
	case StateRegenerating:
		return "regenerating"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

const manualCommandTitle = "Run this command to commit manually:"

// CommitService orchestrates diff collection, message generation, user review
// and the commit itself.
type CommitService struct {
	primary   vcs.Primary
	secondary vcs.Secondary
	provider  ai.Provider
	uiManager ui.Manager
}

// NewCommitService creates a new CommitService with the given dependencies.
// secondary may be nil to disable mirroring into Git.
func NewCommitService(
	primary vcs.Primary,
	secondary vcs.Secondary,
	provider ai.Provider,
	uiManager ui.Manager,
) *CommitService {
	return &CommitService{
		primary:   primary,
		secondary: secondary,
		provider:  provider,
		uiManager: uiManager,
	}
}

// session is the data carried between states of one Run.
type session struct {
	files   []string
	diff    string
	extra   string
	message *ai.GenerateResponse
}

// Run drives one commit session for files (all changes when empty).
// Failures of the tools or the API are reported to the user and end the
// session normally; only an unreadable input stream is returned as an error.
func (s *CommitService) Run(ctx context.Context, files []string) error {
	sess := &session{files: files}
	state := StateCollectingDiff

	for state != StateExiting {
		apperrors.Debug("commit loop: %s", state)

		var err error
		switch state {
		case StateCollectingDiff:
			state = s.collectDiff(ctx, sess)
		case StateGeneratingMessage:
			state = s.generate(ctx, sess)
		case StateAwaitingUserChoice:
			state, err = s.awaitChoice()
		case StateRegenerating:
			state, err = s.regenerate(sess)
		case StateShowingCommand:
			state = s.showCommand(sess)
		case StateCommitting:
			state, err = s.commit(ctx, sess)
		default:
			state = StateExiting
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				s.uiManager.ShowInfo("Input closed, exiting.")
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *CommitService) collectDiff(ctx context.Context, sess *session) State {
	spinner := s.uiManager.ShowSpinner("Collecting changes...")
	spinner.Start()
	diff, err := s.primary.Diff(ctx, sess.files)
	spinner.Stop()

	if err != nil {
		s.uiManager.ShowError(err)
		return StateExiting
	}
	if strings.TrimSpace(diff) == "" {
		s.uiManager.ShowInfo("No changes detected.")
		return StateExiting
	}

	sess.diff = diff
	return StateGeneratingMessage
}

func (s *CommitService) generate(ctx context.Context, sess *session) State {
	spinner := s.uiManager.ShowSpinner("Generating commit message...")
	spinner.Start()
	resp, err := s.provider.GenerateCommitMessage(ctx, &ai.GenerateRequest{
		Diff:        sess.diff,
		ExtraPrompt: sess.extra,
	})
	spinner.Stop()

	if err != nil {
		s.uiManager.ShowError(err)
		return StateExiting
	}

	sess.message = resp
	if err := s.uiManager.DisplayMessage(resp); err != nil {
		s.uiManager.ShowError(err)
		return StateExiting
	}
	return StateAwaitingUserChoice
}

func (s *CommitService) awaitChoice() (State, error) {
	action, err := s.uiManager.PromptAction()
	if err != nil {
		return StateExiting, err
	}

	switch action {
	case ui.ActionAccept:
		return StateCommitting, nil
	case ui.ActionShowCommand:
		return StateShowingCommand, nil
	case ui.ActionRegenerate:
		return StateRegenerating, nil
	case ui.ActionCancel:
		s.uiManager.ShowInfo("Commit cancelled.")
		return StateExiting, nil
	default:
		s.uiManager.ShowWarning("Invalid choice, please enter y, s, r or n.")
		return StateAwaitingUserChoice, nil
	}
}

func (s *CommitService) regenerate(sess *session) (State, error) {
	extra, err := s.uiManager.PromptInput("Extra instruction for the new message (leave empty for none): ")
	if err != nil {
		return StateExiting, err
	}
	sess.extra = extra
	return StateGeneratingMessage, nil
}

func (s *CommitService) showCommand(sess *session) State {
	s.uiManager.ShowCommand(manualCommandTitle, []string{
		s.primary.CommitCommand(sess.message.Message, sess.files),
	})
	return StateExiting
}

func (s *CommitService) commit(ctx context.Context, sess *session) (State, error) {
	message := sess.message.Message

	s.uiManager.ShowInfo("Committing to svn...")
	err := s.primary.Commit(ctx, message, sess.files)
	if apperrors.HasCode(err, apperrors.ErrAuthRequired) {
		s.uiManager.ShowInfo("svn needs authentication, retrying interactively...")
		err = s.primary.CommitInteractive(ctx, message, sess.files)
	}
	if err != nil {
		s.uiManager.ShowError(err)
		s.uiManager.ShowCommand(manualCommandTitle, []string{s.primary.CommitCommand(message, sess.files)})
		return StateExiting, nil
	}

	s.uiManager.ShowSuccess("svn commit succeeded")

	return StateExiting, s.mirrorToSecondary(ctx, sess)
}

// mirrorToSecondary repeats the commit in Git when the working directory is
// also a Git work tree and the user agrees. Git problems only warn.
func (s *CommitService) mirrorToSecondary(ctx context.Context, sess *session) error {
	if s.secondary == nil || !s.secondary.IsRepository(ctx) {
		return nil
	}

	message := sess.message.Message
	s.uiManager.ShowCommand("Git repository detected. The following commands will run:",
		s.secondary.CommitCommands(message, sess.files))

	answer, err := s.uiManager.PromptConfirm("Commit to git as well?")
	if err != nil {
		return err
	}

	switch answer {
	case ui.ConfirmNo:
		s.uiManager.ShowInfo("Skipped git commit.")
		return nil
	case ui.ConfirmInvalid:
		s.uiManager.ShowWarning("Invalid choice, skipping git commit.")
		return nil
	}

	err = s.secondary.Commit(ctx, message, sess.files)
	switch {
	case err == nil:
		s.uiManager.ShowSuccess("git commit succeeded")
	case apperrors.HasCode(err, apperrors.ErrNothingToCommit):
		s.uiManager.ShowInfo("git: nothing to commit.")
	default:
		s.uiManager.ShowWarning(apperrors.SanitizeErrorMessage(err.Error()))
	}
	return nil
}
