// Package render draws detection and recognition results for people: a
// lipgloss token grid and filled-cell mask for the terminal, and a PNG
// overlay for debugging detection.
package render

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is assumed when the output is not a terminal
const DefaultWidth = 80

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of f, or DefaultWidth when it is
// not a terminal or its size is unknown
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
