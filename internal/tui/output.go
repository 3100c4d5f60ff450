package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results reach the user.
type OutputMode int

const (
	// OutputModePlain writes undecorated text, for pipes and redirected output.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks a mode for stdout. plain forces OutputModePlain,
// noColor (or NO_COLOR in the environment) downgrades styled output, and
// forceColor styles output even when stdout is not a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(
		term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd())),
		forceColor,
		noColor || os.Getenv("NO_COLOR") != "",
		plain,
	)
}

func detectOutputMode(isTTY, forceColor, noColor, plain bool) OutputMode {
	switch {
	case plain:
		return OutputModePlain
	case isTTY && !noColor:
		return OutputModeInteractive
	case isTTY, forceColor && !noColor:
		return OutputModeStyled
	default:
		return OutputModePlain
	}
}
