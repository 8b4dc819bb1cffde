package vcs

import "strings"

// FailureKind categorizes a failed commit from the tool's output.
type FailureKind int

const (
	// FailureUnknown is any failure without a recognized marker.
	FailureUnknown FailureKind = iota
	// FailureAuthRequired means the tool needs credentials it could not obtain.
	FailureAuthRequired
	// FailureNothingToCommit means there were no changes to record.
	FailureNothingToCommit
)

// String returns the string representation of FailureKind.
func (k FailureKind) String() string {
	switch k {
	case FailureAuthRequired:
		return "auth-required"
	case FailureNothingToCommit:
		return "nothing-to-commit"
	default:
		return "unknown"
	}
}

// Markers are matched case-insensitively against combined output.
// Tool messages vary with locale and version, so this is best effort.
var (
	authRequiredMarkers = []string{
		"无法取得密码",
		"unable to connect",
		"e215004", // authentication failed
		"e170013", // unable to connect to a repository
	}

	nothingToCommitMarkers = []string{
		"nothing to commit",
		"无文件要提交",
	}
)

// ClassifyCommitOutput maps the output of a failed commit to a FailureKind.
// Authentication markers win when both kinds are present.
func ClassifyCommitOutput(output string) FailureKind {
	lower := strings.ToLower(output)

	for _, m := range authRequiredMarkers {
		if strings.Contains(lower, m) {
			return FailureAuthRequired
		}
	}
	for _, m := range nothingToCommitMarkers {
		if strings.Contains(lower, m) {
			return FailureNothingToCommit
		}
	}
	return FailureUnknown
}
