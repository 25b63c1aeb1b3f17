package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorBlue  = lipgloss.Color("75")  // Light blue - links
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// styleHighlight for emphasized values (crate names, versions).
	styleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// styleLink for URLs.
	styleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// styleDim for secondary text such as extracted entry paths.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// printSuccess prints a success line with a green check mark.
func printSuccess(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

// printEntry prints one extracted archive entry path, dimmed.
func printEntry(path string) {
	fmt.Println(styleDim.Render(path))
}
