package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rundeps/pkg/deps"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// stateIcon returns the styled status icon for a package state.
func stateIcon(s deps.State) string {
	switch s {
	case deps.StateImported, deps.StateSatisfied, deps.StateInstalled:
		return styleSuccess.Render(iconSuccess)
	case deps.StateSkipped:
		return styleWarning.Render(iconWarning)
	case deps.StateError, deps.StateFailed:
		return styleError.Render(iconError)
	default:
		return styleDim.Render("·")
	}
}

// printSummary prints one line per declared package with its final state.
func printSummary(packages []*deps.Package) {
	fmt.Println(styleTitle.Render("Packages"))
	for _, p := range packages {
		line := fmt.Sprintf("%s %s %s",
			stateIcon(p.State()),
			styleValue.Render(p.Spec().Requirement()),
			styleDim.Render(p.State().String()))
		fmt.Println("  " + line)
	}
}

// printBindings prints the resolved bindings, one "name → ref" line each.
func printBindings(b deps.Bindings) {
	if len(b) == 0 {
		return
	}
	fmt.Println(styleTitle.Render("Bindings"))
	for _, name := range b.Names() {
		fmt.Println("  " + styleValue.Render(name) + " " + styleDim.Render(iconArrow) + " " + b[name].Ref())
	}
}
