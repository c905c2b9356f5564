package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pad returns n spaces, or "" when n is not positive.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PadRight pads s with spaces to width display cells. Wider strings are
// returned unchanged.
func PadRight(s string, width int) string {
	return s + Pad(width-lipgloss.Width(s))
}

// SpreadRow lays left and right out on one row of width cells, pushing right
// to the edge. At least one space separates them when the row overflows.
func SpreadRow(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + Pad(gap) + right
}
