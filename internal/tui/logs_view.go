package tui

import (
	"fmt"
	"strings"
)

var logHeader = []string{"ID", "TIME", "LAT", "LNG", "SEVERITY", "DESCRIPTION"}

// logColumns splits width between the six log columns. The description
// takes whatever is left.
func logColumns(width int) []int {
	cols := []int{5, 19, 9, 9, 8, 0}
	used := len(cols) - 1 // separators
	for _, w := range cols[:len(cols)-1] {
		used += w
	}
	cols[len(cols)-1] = maxInt(width-used, 11)
	return cols
}

// formatLogRow pads and truncates one row of cells to the column widths
func formatLogRow(cols []int, cells []string) string {
	parts := make([]string, len(cols))
	for i, w := range cols {
		cell := ""
		if i < len(cells) {
			cell = strings.ReplaceAll(cells[i], "\n", " ")
		}
		parts[i] = fmt.Sprintf("%-*s", w, truncate(cell, w))
	}
	return strings.Join(parts, " ")
}
