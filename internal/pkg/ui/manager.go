// Package ui provides the line-oriented terminal dialog for commit-crafter.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/commitcrafter/commitcrafter/internal/pkg/ai"
	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

const ruleWidth = 50

// Manager defines the interface for UI operations.
type Manager interface {
	DisplayMessage(message *ai.GenerateResponse) error
	PromptAction() (Action, error)
	PromptInput(prompt string) (string, error)
	PromptConfirm(message string) (Confirm, error)
	ShowSpinner(text string) Spinner
	ShowInfo(message string)
	ShowWarning(message string)
	ShowError(err error)
	ShowSuccess(message string)
	ShowCommand(title string, lines []string)
}

// DefaultManager implements Manager on a line reader and plain writers,
// styled with lipgloss.
type DefaultManager struct {
	in           *bufio.Reader
	out          io.Writer
	errOut       io.Writer
	colorEnabled bool
	// animate enables the bubbletea spinner; only set when out is a terminal.
	animate bool
	styles  *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title      lipgloss.Style
	message    lipgloss.Style
	rule       lipgloss.Style
	success    lipgloss.Style
	errorStyle lipgloss.Style
	warning    lipgloss.Style
	info       lipgloss.Style
	command    lipgloss.Style
	prompt     lipgloss.Style
}

// NewDefaultManager creates a DefaultManager bound to the process terminal.
func NewDefaultManager(colorEnabled bool) *DefaultManager {
	m := NewManagerWithIO(os.Stdin, os.Stdout, os.Stderr, colorEnabled)
	m.animate = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return m
}

// NewManagerWithIO creates a DefaultManager reading answers from in.
// The spinner is disabled.
func NewManagerWithIO(in io.Reader, out, errOut io.Writer, colorEnabled bool) *DefaultManager {
	m := &DefaultManager{
		in:           bufio.NewReader(in),
		out:          out,
		errOut:       errOut,
		colorEnabled: colorEnabled,
	}
	m.initStyles()
	return m
}

// initStyles initializes the lipgloss styles.
func (m *DefaultManager) initStyles() {
	if !m.colorEnabled {
		m.styles = &styles{
			title:      lipgloss.NewStyle(),
			message:    lipgloss.NewStyle(),
			rule:       lipgloss.NewStyle(),
			success:    lipgloss.NewStyle(),
			errorStyle: lipgloss.NewStyle(),
			warning:    lipgloss.NewStyle(),
			info:       lipgloss.NewStyle(),
			command:    lipgloss.NewStyle(),
			prompt:     lipgloss.NewStyle(),
		}
		return
	}

	m.styles = &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		message: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		rule: lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		command: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true),
		prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")),
	}
}

// DisplayMessage shows the generated commit message between two rules.
func (m *DefaultManager) DisplayMessage(message *ai.GenerateResponse) error {
	if message == nil {
		return fmt.Errorf("message cannot be nil")
	}

	rule := m.styles.rule.Render(strings.Repeat("-", ruleWidth))

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.title.Render(fmt.Sprintf("Generated commit message (model: %s):", message.Model)))
	fmt.Fprintln(m.out, rule)
	fmt.Fprintln(m.out, m.styles.message.Render(message.Message))
	fmt.Fprintln(m.out, rule)

	if message.UsedFallback {
		m.ShowWarning("The API response contained no message text.")
	}
	return nil
}

// ShowInfo displays an informational message.
func (m *DefaultManager) ShowInfo(message string) {
	fmt.Fprintln(m.out, m.styles.info.Render(message))
}

// ShowWarning displays a non-fatal problem.
func (m *DefaultManager) ShowWarning(message string) {
	fmt.Fprintln(m.out, m.styles.warning.Render("Warning: "+message))
}

// ShowError displays an error with its suggestion. Secrets are masked.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}

	text := apperrors.FormatError(err)
	if apperrors.IsVerbose() {
		text = strings.TrimRight(apperrors.FormatErrorVerbose(err), "\n")
	}

	fmt.Fprintln(m.errOut)
	fmt.Fprintln(m.errOut, m.styles.errorStyle.Render(text))
}

// ShowSuccess displays a success message to the user.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Fprintln(m.out, m.styles.success.Render("[OK] "+message))
}

// ShowCommand prints command lines the user can run manually.
func (m *DefaultManager) ShowCommand(title string, lines []string) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.title.Render(title))
	for _, line := range lines {
		fmt.Fprintln(m.out, "  "+m.styles.command.Render(line))
	}
}

// ShowSpinner creates and returns a spinner for loading states.
// Without a terminal the text is printed once instead.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	if !m.animate {
		return &lineSpinner{out: m.out, text: text}
	}
	return newBubbleSpinner(text, m.out, m.colorEnabled)
}
