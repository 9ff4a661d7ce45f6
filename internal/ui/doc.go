// Package ui provides the color themes used by the command-line exerciser.
// Styling is done with lipgloss, which drops escape sequences on its own when
// the output is not a terminal; the "none" theme additionally removes every
// color when NO_COLOR or -no-color is in effect.
package ui
