// Package ui renders styled terminal output for the planner commands.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	primaryColor   = lipgloss.Color("#00D9FF")
	successColor   = lipgloss.Color("#00FF88")
	warningColor   = lipgloss.Color("#FFB800")
	errorColor     = lipgloss.Color("#FF4444")
	secondaryColor = lipgloss.Color("#6C757D")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	secondaryStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SQLStatement prints rendered DDL.
	SQLStatement = color.New(color.FgCyan)
)

// Header prints the bordered command header.
func Header(title, subtitle string) {
	width := 80
	if w := pterm.GetTerminalWidth(); w > 0 {
		width = w
	}

	header := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Center,
			titleStyle.Render(title),
			secondaryStyle.Render(subtitle),
		))

	fmt.Println(header)
	fmt.Println()
}

// Success prints a success line.
func Success(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Error prints an error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning line.
func Warning(format string, args ...any) {
	fmt.Println(warningStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

// Info prints a secondary info line.
func Info(format string, args ...any) {
	fmt.Println(secondaryStyle.Render(fmt.Sprintf(format, args...)))
}

// DiagnosticsTable prints checker findings as a table.
func DiagnosticsTable(rows [][]string) {
	data := pterm.TableData{{"Severity", "Object", "Message"}}
	data = append(data, rows...)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// Statements prints rendered SQL statements, numbered.
func Statements(statements []string) {
	for i, stmt := range statements {
		fmt.Println(secondaryStyle.Render(fmt.Sprintf("-- statement %d", i+1)))
		SQLStatement.Println(stmt + ";")
		fmt.Println()
	}
}

// Markdown renders markdown to the terminal.
func Markdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(content)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
