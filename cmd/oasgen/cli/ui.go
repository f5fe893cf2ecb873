package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/talav/oasgen/diagnostic"
)

var (
	primaryColor = lipgloss.Color("#5865F2")
	errorColor   = lipgloss.Color("#ED4245")
	warnColor    = lipgloss.Color("#FEE75C")
	dimColor     = lipgloss.Color("#72767D")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(warnColor)
	noteStyle  = lipgloss.NewStyle().Foreground(dimColor)
)

const (
	iconCheck = "✓"
	iconCross = "✗"
	iconWarn  = "▲"
	iconNote  = "●"
)

// printDiagnostics renders the collected diagnostics to stdout, one line
// per diagnostic, styled by severity (SPEC_FULL.md §11's "diagnostics
// presentation lives only in the driver" non-goal boundary).
func printDiagnostics(diags []diagnostic.Diagnostic) {
	if len(diags) == 0 {
		return
	}

	fmt.Println(titleStyle.Render("Diagnostics"))
	for _, d := range diags {
		line := fmt.Sprintf("[%s] %s", d.Code, d.Message)
		if d.Path != "" {
			line = fmt.Sprintf("%s (%s)", line, d.Path)
		}

		switch d.Severity {
		case diagnostic.SeverityError:
			fmt.Println(errorStyle.Render(iconCross + " " + line))
		case diagnostic.SeverityWarning:
			fmt.Println(warnStyle.Render(iconWarn + " " + line))
		default:
			fmt.Println(noteStyle.Render(iconNote + " " + line))
		}
	}
}
