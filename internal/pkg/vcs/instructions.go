package vcs

import (
	"fmt"
	"runtime"
	"strings"
)

// ManualInstructions describes how to install a missing tool on a platform.
type ManualInstructions struct {
	// Platform is the operating system (windows, darwin, linux).
	Platform string
	// Tool is the binary name (svn, git).
	Tool string
	// Steps contains one install option per line.
	Steps []string
}

// String renders the instructions for terminal output.
func (m *ManualInstructions) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Please install %s first:", m.Tool)
	for _, step := range m.Steps {
		sb.WriteString("\n  ")
		sb.WriteString(step)
	}
	return sb.String()
}

// InstallInstructions returns install steps for tool on the current platform.
func InstallInstructions(tool string) *ManualInstructions {
	return installInstructionsFor(runtime.GOOS, tool)
}

func installInstructionsFor(platform, tool string) *ManualInstructions {
	var steps []string

	switch tool {
	case SVNBinary:
		switch platform {
		case "windows":
			steps = []string{
				"TortoiseSVN:   https://tortoisesvn.net (select \"command line client tools\")",
				"Chocolatey:    choco install svn",
			}
		case "darwin":
			steps = []string{
				"Homebrew:      brew install subversion",
				"MacPorts:      sudo port install subversion",
			}
		default:
			steps = []string{
				"Ubuntu/Debian: sudo apt install subversion",
				"CentOS/RHEL:   sudo yum install subversion",
				"Fedora:        sudo dnf install subversion",
				"Arch:          sudo pacman -S subversion",
			}
		}
	case GitBinary:
		switch platform {
		case "windows":
			steps = []string{
				"Installer:     https://git-scm.com/download/win",
				"winget:        winget install --id Git.Git -e",
			}
		case "darwin":
			steps = []string{
				"Xcode tools:   xcode-select --install",
				"Homebrew:      brew install git",
			}
		default:
			steps = []string{
				"Ubuntu/Debian: sudo apt install git",
				"CentOS/RHEL:   sudo yum install git",
				"Fedora:        sudo dnf install git",
				"Arch:          sudo pacman -S git",
			}
		}
	default:
		steps = []string{fmt.Sprintf("Install %s with your system package manager", tool)}
	}

	return &ManualInstructions{
		Platform: platform,
		Tool:     tool,
		Steps:    steps,
	}
}
