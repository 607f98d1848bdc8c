package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/accident-monitor/internal/storage"
)

var (
	graphTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))
	graphAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	countGraphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// renderHistoryGraph draws the accident counter over time with the range
// selector hint
func renderHistoryGraph(data []float64, width, height int, timeRange storage.TimeRange, alerts int, persisted bool) string {
	var s strings.Builder

	title := fmt.Sprintf("📈 Accident History - %s", timeRange.String())
	s.WriteString(graphTitleStyle.Render(title) + "\n")

	if persisted {
		s.WriteString(graphAxisStyle.Render("[1]30m [2]1h [3]6h [4]1d [5]1w") + "\n")
		s.WriteString(graphAxisStyle.Render(fmt.Sprintf("Alerts in range: %d", alerts)) + "\n\n")
	} else {
		s.WriteString(graphAxisStyle.Render("This session only (history disabled)") + "\n\n")
	}

	if len(data) == 0 {
		s.WriteString("Waiting for data...")
		return s.String()
	}

	graphHeight := height - 6
	if graphHeight < 3 {
		graphHeight = 3
	}
	s.WriteString(renderCountGraph(data, width, graphHeight))

	return s.String()
}

// renderCountGraph creates a multi-line ASCII area graph. The y axis starts
// at zero.
func renderCountGraph(data []float64, width, height int) string {
	var s strings.Builder

	current := data[len(data)-1]
	s.WriteString(countGraphStyle.Render("█") + " Accidents: " +
		countGraphStyle.Render(formatTick(current)) + "\n")

	maxVal := 0.0
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	maxVal = niceCeil(maxVal)

	// Leave room for the y-axis labels
	maxWidth := width - 8
	if maxWidth < 10 {
		maxWidth = 10
	}
	display := data
	if len(display) > maxWidth {
		display = display[len(display)-maxWidth:]
	}

	labelWidth := len(formatTick(maxVal)) + 1
	for row := height; row >= 1; row-- {
		var line strings.Builder

		switch row {
		case height:
			line.WriteString(graphAxisStyle.Render(fmt.Sprintf("%*s", labelWidth, formatTick(maxVal))))
		case (height + 1) / 2:
			line.WriteString(graphAxisStyle.Render(fmt.Sprintf("%*s", labelWidth, formatTick(maxVal/2))))
		default:
			line.WriteString(strings.Repeat(" ", labelWidth))
		}
		line.WriteString(graphAxisStyle.Render("│"))

		threshold := float64(row) / float64(height) * maxVal
		for _, v := range display {
			if v > 0 && v >= threshold {
				line.WriteString(countGraphStyle.Render("█"))
			} else if row == 1 {
				line.WriteString(graphAxisStyle.Render("·"))
			} else {
				line.WriteString(" ")
			}
		}
		s.WriteString(line.String() + "\n")
	}

	s.WriteString(graphAxisStyle.Render(fmt.Sprintf("%*s", labelWidth, "0") + "└" + strings.Repeat("─", len(display))))
	s.WriteString("\n" + graphAxisStyle.Render(fmt.Sprintf("%d data points", len(data))))

	return s.String()
}
