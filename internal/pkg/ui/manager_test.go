package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/commitcrafter/commitcrafter/internal/pkg/ai"
	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

func newTestManager(input string) (*DefaultManager, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewManagerWithIO(strings.NewReader(input), out, errOut, false), out, errOut
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionAccept, "accept"},
		{ActionShowCommand, "show-command"},
		{ActionRegenerate, "regenerate"},
		{ActionCancel, "cancel"},
		{ActionInvalid, "invalid"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.action.String(); got != tt.expected {
				t.Errorf("Action.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input string
		want  Action
	}{
		{"", ActionAccept},
		{"   ", ActionAccept},
		{"y", ActionAccept},
		{"Y", ActionAccept},
		{" y ", ActionAccept},
		{"s", ActionShowCommand},
		{"S", ActionShowCommand},
		{"r", ActionRegenerate},
		{"R please", ActionRegenerate},
		{"n", ActionCancel},
		{"N", ActionCancel},
		{"x", ActionInvalid},
		{"yes", ActionInvalid},
		{"1", ActionInvalid},
	}

	for _, tt := range tests {
		if got := ParseAction(tt.input); got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  Confirm
	}{
		{"", ConfirmYes},
		{"y", ConfirmYes},
		{"Y", ConfirmYes},
		{"n", ConfirmNo},
		{"N", ConfirmNo},
		{"maybe", ConfirmInvalid},
		{"no", ConfirmInvalid},
	}

	for _, tt := range tests {
		if got := ParseConfirm(tt.input); got != tt.want {
			t.Errorf("ParseConfirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// Property: action parsing ignores case and surrounding whitespace.
func TestParseAction_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("case and padding do not change the action", prop.ForAll(
		func(token string, leading, trailing int) bool {
			padded := strings.Repeat(" ", leading) + token + strings.Repeat(" ", trailing)
			return ParseAction(strings.ToUpper(padded)) == ParseAction(token) &&
				ParseAction(strings.ToLower(padded)) == ParseAction(token)
		},
		gen.OneConstOf("", "y", "s", "r", "n", "q", "yes", "abc"),
		gen.IntRange(0, 3),
		gen.IntRange(0, 3),
	))

	properties.Property("any other single letter is invalid", prop.ForAll(
		func(r rune) bool {
			s := string(r)
			switch s {
			case "y", "s", "r", "n":
				return ParseAction(s) != ActionInvalid
			}
			return ParseAction(s) == ActionInvalid
		},
		gen.RuneRange('a', 'z'),
	))

	properties.TestingRun(t)
}

func TestPromptAction(t *testing.T) {
	m, out, _ := newTestManager("r\n")

	action, err := m.PromptAction()
	if err != nil {
		t.Fatalf("PromptAction() error = %v", err)
	}
	if action != ActionRegenerate {
		t.Errorf("PromptAction() = %v, want %v", action, ActionRegenerate)
	}
	if !strings.Contains(out.String(), "[Y/s/r/n]") {
		t.Errorf("menu should show the choices, got %q", out.String())
	}
}

func TestPromptAction_LastLineWithoutNewline(t *testing.T) {
	m, _, _ := newTestManager("n")

	action, err := m.PromptAction()
	if err != nil {
		t.Fatalf("PromptAction() error = %v", err)
	}
	if action != ActionCancel {
		t.Errorf("PromptAction() = %v, want %v", action, ActionCancel)
	}
}

func TestPromptAction_EOF(t *testing.T) {
	m, _, _ := newTestManager("")

	_, err := m.PromptAction()
	if !errors.Is(err, io.EOF) {
		t.Errorf("PromptAction() error = %v, want io.EOF", err)
	}
}

func TestPromptInputAndConfirm(t *testing.T) {
	m, out, _ := newTestManager("  mention refactor  \r\nn\n")

	extra, err := m.PromptInput("Extra instruction: ")
	if err != nil {
		t.Fatalf("PromptInput() error = %v", err)
	}
	if extra != "mention refactor" {
		t.Errorf("PromptInput() = %q, want %q", extra, "mention refactor")
	}

	answer, err := m.PromptConfirm("Commit to git?")
	if err != nil {
		t.Fatalf("PromptConfirm() error = %v", err)
	}
	if answer != ConfirmNo {
		t.Errorf("PromptConfirm() = %v, want %v", answer, ConfirmNo)
	}
	if !strings.Contains(out.String(), "Commit to git? [Y/n]: ") {
		t.Errorf("confirm prompt missing, got %q", out.String())
	}
}

func TestDisplayMessage(t *testing.T) {
	m, out, _ := newTestManager("")

	err := m.DisplayMessage(&ai.GenerateResponse{Message: "Fix login bug", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("DisplayMessage() error = %v", err)
	}

	got := out.String()
	rule := strings.Repeat("-", 50)
	if strings.Count(got, rule) != 2 {
		t.Errorf("expected two rules, got %q", got)
	}
	if !strings.Contains(got, "Fix login bug") || !strings.Contains(got, "gpt-4o-mini") {
		t.Errorf("DisplayMessage() output = %q", got)
	}
	if strings.Contains(got, "Warning") {
		t.Errorf("no warning expected, got %q", got)
	}

	if err := m.DisplayMessage(nil); err == nil {
		t.Error("DisplayMessage(nil) should return error")
	}
}

func TestDisplayMessage_Fallback(t *testing.T) {
	m, out, _ := newTestManager("")

	_ = m.DisplayMessage(&ai.GenerateResponse{Message: ai.FallbackMessage, UsedFallback: true})
	if !strings.Contains(out.String(), "Warning") {
		t.Errorf("fallback should warn, got %q", out.String())
	}
}

func TestShowError(t *testing.T) {
	m, out, errOut := newTestManager("")

	m.ShowError(nil)
	if errOut.Len() != 0 {
		t.Errorf("ShowError(nil) wrote %q", errOut.String())
	}

	m.ShowError(apperrors.New(apperrors.ErrMissingAPIKey, "openai_api_key is not set").
		WithSuggestion("Set it in config.toml"))

	got := errOut.String()
	if !strings.Contains(got, "openai_api_key is not set") || !strings.Contains(got, "Set it in config.toml") {
		t.Errorf("ShowError() output = %q", got)
	}
	if out.Len() != 0 {
		t.Errorf("errors must go to the error writer, stdout got %q", out.String())
	}
}

func TestShowError_MasksSecrets(t *testing.T) {
	m, _, errOut := newTestManager("")

	m.ShowError(errors.New("request failed with key sk-abcdefghijklmnopqrstuvwxyz123456"))
	if strings.Contains(errOut.String(), "sk-abcdefghijklmnopqrstuvwxyz123456") {
		t.Errorf("API key leaked: %q", errOut.String())
	}
}

func TestShowHelpers(t *testing.T) {
	m, out, _ := newTestManager("")

	m.ShowInfo("No changes detected")
	m.ShowWarning("git commit failed")
	m.ShowSuccess("svn commit succeeded")
	m.ShowCommand("Run manually:", []string{`svn commit -m "Fix bug"`})

	got := out.String()
	for _, want := range []string{
		"No changes detected",
		"Warning: git commit failed",
		"[OK] svn commit succeeded",
		"Run manually:",
		`  svn commit -m "Fix bug"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q in %q", want, got)
		}
	}
}

func TestShowSpinner_NoTerminal(t *testing.T) {
	m, out, _ := newTestManager("")

	s := m.ShowSpinner("Generating commit message...")
	if _, ok := s.(*lineSpinner); !ok {
		t.Fatalf("ShowSpinner() = %T, want *lineSpinner", s)
	}

	s.Start()
	s.Start()
	s.UpdateText("ignored")
	s.Stop()

	if strings.Count(out.String(), "Generating commit message...") != 1 {
		t.Errorf("spinner text should print once, got %q", out.String())
	}
}

func TestBubbleSpinner_StartStop(t *testing.T) {
	out := &bytes.Buffer{}
	s := newBubbleSpinner("Working...", out, false)

	s.Start()
	s.UpdateText("Still working...")
	s.Stop()
	s.Stop()

	if s.program != nil {
		t.Error("program should be cleared after Stop")
	}
}
