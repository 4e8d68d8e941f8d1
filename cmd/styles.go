package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	themeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printHeading(title string) {
	fmt.Println("  " + headingStyle.Render(strings.ToUpper(title)))
	fmt.Println("  " + ruleStyle.Render(strings.Repeat("─", 40)))
}

func truncTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
