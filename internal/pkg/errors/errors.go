// Package errors provides error types, user-facing formatting and logging for commit-crafter.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// Configuration errors
	ErrConfigDirUnresolvable ErrorCode = iota + 100
	ErrConfigNotFound
	ErrConfigUnreadable
	ErrConfigMalformed
	ErrMissingAPIKey
)

const (
	// Version-control tool errors
	ErrToolMissing ErrorCode = iota + 200
	ErrDiffExecution
	ErrDiffNonZeroExit
	ErrCommitFailed
	ErrAuthRequired
	ErrNothingToCommit
)

const (
	// Generation errors
	ErrNetwork ErrorCode = iota + 300
	ErrHTTPStatus
	ErrBadResponseShape
	ErrAIProviderFailed
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrConfigDirUnresolvable:
		return "ConfigDirUnresolvable"
	case ErrConfigNotFound:
		return "ConfigNotFound"
	case ErrConfigUnreadable:
		return "ConfigUnreadable"
	case ErrConfigMalformed:
		return "ConfigMalformed"
	case ErrMissingAPIKey:
		return "MissingAPIKey"
	case ErrToolMissing:
		return "ToolMissing"
	case ErrDiffExecution:
		return "DiffExecution"
	case ErrDiffNonZeroExit:
		return "DiffNonZeroExit"
	case ErrCommitFailed:
		return "CommitFailed"
	case ErrAuthRequired:
		return "AuthRequired"
	case ErrNothingToCommit:
		return "NothingToCommit"
	case ErrNetwork:
		return "Network"
	case ErrHTTPStatus:
		return "HTTPStatus"
	case ErrBadResponseShape:
		return "BadResponseShape"
	case ErrAIProviderFailed:
		return "AIProviderFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether any AppError in the chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// Common error constructors with suggestions

// NewToolMissingError creates an error for a version-control binary that is not installed.
func NewToolMissingError(tool string, instructions string) *AppError {
	return &AppError{
		Code:       ErrToolMissing,
		Message:    fmt.Sprintf("%s is not installed", tool),
		Suggestion: instructions,
	}
}

// NewCommandError creates an error for a failed version-control command.
// The combined output of the command is kept in the error context.
func NewCommandError(code ErrorCode, command string, err error, output string) *AppError {
	appErr := &AppError{
		Code:    code,
		Message: fmt.Sprintf("%s failed", command),
		Cause:   err,
	}
	if output = strings.TrimSpace(output); output != "" {
		appErr.Message = fmt.Sprintf("%s failed: %s", command, output)
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewNetworkError creates an error for network failures.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Code:       ErrNetwork,
		Message:    "API request failed",
		Cause:      err,
		Suggestion: "Please check your network connection and openai_url",
	}
}

// NewHTTPStatusError creates an error for a non-success API status.
// The raw response body is part of the message.
func NewHTTPStatusError(status int, body string) *AppError {
	appErr := &AppError{
		Code:    ErrHTTPStatus,
		Message: fmt.Sprintf("API returned status %d: %s", status, strings.TrimSpace(body)),
		Context: map[string]interface{}{
			"status": status,
			"body":   body,
		},
	}
	switch status {
	case 401, 403:
		appErr.Suggestion = "Please check openai_api_key in your config file"
	case 404:
		appErr.Suggestion = "Please check openai_url and openai_model in your config file"
	}
	return appErr
}

// NewBadResponseError creates an error for an API response that cannot be decoded.
func NewBadResponseError(err error) *AppError {
	return &AppError{
		Code:    ErrBadResponseShape,
		Message: "failed to parse API response",
		Cause:   err,
	}
}

// NewAIProviderError creates an error for AI provider failures.
func NewAIProviderError(provider string, err error) *AppError {
	return &AppError{
		Code:    ErrAIProviderFailed,
		Message: fmt.Sprintf("%s provider error", provider),
		Cause:   err,
	}
}

// FormatError formats an error for user display.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Message))

		if appErr.Cause != nil {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(SanitizeErrorMessage(appErr.Cause.Error()))
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for verbose mode.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", SanitizeErrorMessage(appErr.Cause.Error())))
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, SanitizeErrorMessage(fmt.Sprintf("%v", v))))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, SanitizeErrorMessage(err.Error())))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// SanitizeErrorMessage masks any API keys or bearer tokens in error messages.
func SanitizeErrorMessage(msg string) string {
	result := apiKeyPattern.ReplaceAllStringFunc(msg, MaskAPIKey)
	return bearerPattern.ReplaceAllString(result, "Bearer ****")
}

var (
	apiKeyPattern = regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`)
	bearerPattern = regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`)
)
