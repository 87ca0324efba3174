// Package ui holds the terminal-facing pieces of schemactl: status styling,
// interactivity detection and apply confirmation.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	LabelStyle   = lipgloss.NewStyle().Bold(true)
)

const (
	checkMark = "✓"
	crossMark = "✗"
	warnMark  = "⚠️"
)

func render(style lipgloss.Style, s string) string {
	if os.Getenv("NO_COLOR") != "" {
		return s
	}
	return style.Render(s)
}

// Success prefixes msg with a green check mark.
func Success(msg string) string {
	return render(SuccessStyle, checkMark) + " " + msg
}

// Failure prefixes msg with a red cross.
func Failure(msg string) string {
	return render(ErrorStyle, crossMark) + " " + msg
}

// Warning prefixes msg with a warning sign.
func Warning(msg string) string {
	return render(WarningStyle, warnMark) + "  " + msg
}

// Label renders a bold field name.
func Label(s string) string {
	return render(LabelStyle, s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return render(MutedStyle, s)
}
