package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // spinner, table headers
	colorOK     = lipgloss.Color("35")  // agreement, written files
	colorWarn   = lipgloss.Color("220") // disagreement details
	colorFail   = lipgloss.Color("167") // errors, mismatched rows
	colorValue  = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("240")
)

var (
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorValue)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
	StyleError   = lipgloss.NewStyle().Foreground(colorFail)
	styleAccent  = lipgloss.NewStyle().Foreground(colorAccent)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Lines
// =============================================================================

// status writes one marked line per call: an icon, a space and the message.
func status(w io.Writer, icon string, iconStyle lipgloss.Style, msg string) {
	fmt.Fprintln(w, iconStyle.Render(icon)+" "+msg)
}

func printSuccess(w io.Writer, format string, args ...any) {
	status(w, iconSuccess, StyleSuccess, fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	status(w, iconError, StyleError, fmt.Sprintf(format, args...))
}

// printWarning colors the message as well as the icon.
func printWarning(w io.Writer, format string, args ...any) {
	status(w, iconWarning, StyleWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	status(w, iconInfo, StyleDim, fmt.Sprintf(format, args...))
}

// printDetail writes an indented, muted line under a status line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact path under a status line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}
