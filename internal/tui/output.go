package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are drawn.
type OutputMode int

const (
	// OutputModePlain writes unstyled text. Used for pipes and NO_COLOR.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

const (
	defaultWidth = 80
	minWidth     = 40
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// DetectOutputMode picks a mode for stdout. plain and noColor force plain output,
// forceColor forces styled output even when stdout is not a terminal. CI environments
// get styled output rather than an interactive program.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	if plain || noColor || os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if forceColor {
		return OutputModeStyled
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the column count of w when it is a terminal, else 80.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return max(width, minWidth)
		}
	}
	return defaultWidth
}
