package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	highlight  = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special    = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning    = lipgloss.AdaptiveColor{Light: "#F29F05", Dark: "#F29F05"}
	errorColor = lipgloss.AdaptiveColor{Light: "#E05252", Dark: "#E05252"}

	titleStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	okDot   = lipgloss.NewStyle().Foreground(special).SetString("●")
	warnDot = lipgloss.NewStyle().Foreground(warning).SetString("●")
	errDot  = lipgloss.NewStyle().Foreground(errorColor).SetString("●")
)

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", okDot.String(), msg)
}

func printWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", warnDot.String(), msg)
}

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", errDot.String(), msg)
}

// renderTable writes left-aligned columns sized to their widest cell.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c + strings.Repeat(" ", widths[i]-len(c))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	fmt.Fprintln(w, titleStyle.Render(line(headers)))
	for _, row := range rows {
		fmt.Fprintln(w, line(row))
	}
}
