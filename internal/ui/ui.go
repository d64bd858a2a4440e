package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
)

// Out receives all user facing output.
var Out io.Writer = os.Stdout

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#00D9FF") // Cyan
	successColor   = lipgloss.Color("#04B575") // Green
	errorColor     = lipgloss.Color("#FF5F87") // Pink/Red
	warningColor   = lipgloss.Color("#FFAF00") // Orange
	mutedColor     = lipgloss.Color("#626262") // Gray
	accentColor    = lipgloss.Color("#FFD700") // Gold

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	checkmark = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			SetString("✓")

	cross = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true).
		SetString("✗")

	arrow = lipgloss.NewStyle().
		Foreground(secondaryColor).
		SetString("→")

	dot = lipgloss.NewStyle().
		Foreground(mutedColor).
		SetString("•")

	star = lipgloss.NewStyle().
		Foreground(accentColor).
		SetString("★")

	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	highlightStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)
)

func emit(s string) {
	fmt.Fprintln(Out, s)
}

// PrintTitle prints a major title (for app name or major sections)
func PrintTitle(title string) {
	emit(titleStyle.Render("╭─ " + title + " ─╮"))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	emit(headerStyle.Render("▸ " + title))
}

// PrintStep prints a step with indentation
func PrintStep(step string) {
	emit(stepStyle.Render(arrow.String() + " " + step))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	emit(itemStyle.Render(dot.String() + " " + item))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	emit(stepStyle.Render(checkmark.String() + " " + successStyle.Render(message)))
}

// PrintError prints an error message
func PrintError(message string) {
	emit(stepStyle.Render(cross.String() + " " + errorStyle.Render(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	emit(stepStyle.Render("⚠ " + warningStyle.Render(message)))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	emit(stepStyle.Render(infoStyle.Render(message)))
}

// PrintHighlight prints highlighted text
func PrintHighlight(message string) {
	emit(stepStyle.Render(star.String() + " " + highlightStyle.Render(message)))
}

// PrintBox prints text in a rounded box
func PrintBox(content string) {
	emit(boxStyle.Render(content))
}

// PrintKeyValue prints a key-value pair with nice formatting
func PrintKeyValue(key, value string) {
	emit(stepStyle.Render(keyStyle.Render(key+":") + " " + value))
}

// PrintTree prints one line of a hierarchy at the given depth.
func PrintTree(depth int, label, detail string) {
	line := strings.Repeat("  ", depth) + label
	if detail != "" {
		line += " " + infoStyle.Render(detail)
	}
	emit(stepStyle.Render(line))
}

// Table column widths: name, material, vertices, triangles.
var tableWidths = []int{36, 20, 10, 10}

func fitColumn(col string, width int) string {
	if len(col) > width {
		return col[:width-3] + "..."
	}
	return col + strings.Repeat(" ", width-len(col))
}

// PrintTableHeader prints a table header
func PrintTableHeader(headers ...string) {
	var cols, rule []string
	for i, header := range headers {
		if i >= len(tableWidths) {
			break
		}
		cols = append(cols, fitColumn(header, tableWidths[i]))
		rule = append(rule, strings.Repeat("─", tableWidths[i]))
	}
	emit(stepStyle.Render(keyStyle.Render(strings.Join(cols, " │ "))))
	emit(stepStyle.Render(infoStyle.Render(strings.Join(rule, "─┼─"))))
}

// PrintTableRow prints a formatted table row with columns
func PrintTableRow(columns ...string) {
	var cols []string
	for i, col := range columns {
		if i >= len(tableWidths) {
			break
		}
		cols = append(cols, fitColumn(col, tableWidths[i]))
	}
	emit(stepStyle.Render(strings.Join(cols, " │ ")))
}

// PrintYAML prints YAML with syntax highlighting. Highlighting falls back to
// plain text when the terminal setup is unknown to chroma.
func PrintYAML(data []byte) {
	if err := quick.Highlight(Out, string(data), "yaml", "terminal256", "monokai"); err != nil {
		fmt.Fprint(Out, string(data))
	}
}
