package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette used for console output
var (
	headerColor  = lipgloss.Color("#4ccbf1")
	successColor = lipgloss.Color("#4dca7d")
	errorColor   = lipgloss.Color("#f46251")
	mutedColor   = lipgloss.Color("#9f83e4")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)

func init() {
	if termenv.EnvNoColor() {
		DisableColor()
	}
}

// DisableColor forces plain output for all styles.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Header renders a section header
func Header(text string) string {
	return headerStyle.Render(text)
}

// Success renders text in the success color
func Success(text string) string {
	return successStyle.Render(text)
}

// Failure renders text in the error color
func Failure(text string) string {
	return errorStyle.Render(text)
}

// Muted renders secondary text
func Muted(text string) string {
	return mutedStyle.Render(text)
}
