package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/handrank/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	handTypeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// renderHand shows cards high to low with red hearts and diamonds.
func renderHand(h poker.Hand) string {
	cards := h.SortedCards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackCardStyle
		if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
			style = redCardStyle
		}
		parts[i] = style.Render(c.Pretty())
	}
	return strings.Join(parts, " ")
}
