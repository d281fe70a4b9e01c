package main

// Provides a way to view all detected file types, how they are highlighted
// and which formatter :format runs for them.

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("215"))
	infoNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("254"))
	infoMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// PrintInfo prints a summary table of all supported languages.
func PrintInfo(out io.Writer) {
	cols := []int{12, 22, 24, 30}
	row := func(style lipgloss.Style, cells ...string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(cols[i]).Render(c)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	// Table header.
	fmt.Fprintln(out, row(infoHeaderStyle, "Name", "Extensions", "Highlighter", "Formatter"))
	fmt.Fprintln(out, infoMutedStyle.Render(strings.Repeat("-", 88)))

	for _, lang := range languages {
		formatter := "-"
		if len(lang.Formatter) > 0 {
			formatter = strings.Join(lang.Formatter, " ")
		}
		fmt.Fprintln(out, row(infoNameStyle,
			lang.Name,
			strings.Join(lang.Extensions, " "),
			lang.highlighterName(),
			formatter,
		))
	}
}
