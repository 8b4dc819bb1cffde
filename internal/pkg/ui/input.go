package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Action represents the user's choice after a message is shown.
type Action int

const (
	ActionAccept Action = iota
	ActionShowCommand
	ActionRegenerate
	ActionCancel
	ActionInvalid
)

// String returns the string representation of an Action.
func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionShowCommand:
		return "show-command"
	case ActionRegenerate:
		return "regenerate"
	case ActionCancel:
		return "cancel"
	case ActionInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Confirm is the answer to a yes/no question that defaults to yes.
type Confirm int

const (
	ConfirmYes Confirm = iota
	ConfirmNo
	ConfirmInvalid
)

// ParseAction maps a menu answer to an Action. Only the first token counts
// and case is ignored; an empty answer accepts.
func ParseAction(line string) Action {
	switch firstToken(line) {
	case "", "y":
		return ActionAccept
	case "s":
		return ActionShowCommand
	case "r":
		return ActionRegenerate
	case "n":
		return ActionCancel
	default:
		return ActionInvalid
	}
}

// ParseConfirm maps a [Y/n] answer to a Confirm.
func ParseConfirm(line string) Confirm {
	switch firstToken(line) {
	case "", "y":
		return ConfirmYes
	case "n":
		return ConfirmNo
	default:
		return ConfirmInvalid
	}
}

func firstToken(line string) string {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// PromptAction shows the menu and reads one answer.
func (m *DefaultManager) PromptAction() (Action, error) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.styles.title.Render("Options:"))
	fmt.Fprintln(m.out, "  [y] Commit with this message")
	fmt.Fprintln(m.out, "  [s] Show the commit command")
	fmt.Fprintln(m.out, "  [r] Regenerate")
	fmt.Fprintln(m.out, "  [n] Quit")

	line, err := m.ask("Choose [Y/s/r/n]: ")
	if err != nil {
		return ActionCancel, err
	}
	return ParseAction(line), nil
}

// PromptInput asks for a free-form line and returns it trimmed.
func (m *DefaultManager) PromptInput(prompt string) (string, error) {
	line, err := m.ask(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptConfirm asks a [Y/n] question.
func (m *DefaultManager) PromptConfirm(message string) (Confirm, error) {
	line, err := m.ask(message + " [Y/n]: ")
	if err != nil {
		return ConfirmNo, err
	}
	return ParseConfirm(line), nil
}

// ask prints prompt and reads one line. A final line without a newline is
// returned normally; io.EOF is returned only when nothing was read.
func (m *DefaultManager) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, m.styles.prompt.Render(prompt))

	line, err := m.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
