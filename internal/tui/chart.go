package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	chartBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BCD4"))
	chartAxisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// barChart is a vertical bar chart with a zero-based y axis
type barChart struct {
	labels       []string
	datasetLabel string
	data         []float64
}

// newStatsChart builds the single-bar accident chart
func newStatsChart(count float64) barChart {
	return barChart{
		labels:       []string{"Accidents"},
		datasetLabel: "Count",
		data:         []float64{count},
	}
}

// yMax is the top of the y axis: the largest value rounded up to 1, 2 or 5
// times a power of ten
func (c barChart) yMax() float64 {
	max := 0.0
	for _, v := range c.data {
		if v > max {
			max = v
		}
	}
	return niceCeil(max)
}

func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, f := range []float64{1, 2, 5, 10} {
		if f*exp >= v {
			return f * exp
		}
	}
	return 10 * exp
}

// render draws the chart in width x height cells (plus legend and labels)
func (c barChart) render(width, height int) string {
	if len(c.data) == 0 {
		return chartAxisStyle.Render("No data")
	}

	var s strings.Builder
	s.WriteString(chartBarStyle.Render("■") + " " + c.datasetLabel + "\n")

	top := c.yMax()
	axisWidth := len(formatTick(top)) + 1
	plotWidth := maxInt(width-axisWidth-1, len(c.data)*3)
	slot := plotWidth / len(c.data)
	barWidth := maxInt(slot*2/3, 1)
	pad := (slot - barWidth) / 2

	for row := height; row >= 1; row-- {
		var line strings.Builder

		// Labels at the top, middle and bottom rows
		switch row {
		case height:
			line.WriteString(chartAxisStyle.Render(fmt.Sprintf("%*s", axisWidth, formatTick(top))))
		case (height + 1) / 2:
			line.WriteString(chartAxisStyle.Render(fmt.Sprintf("%*s", axisWidth, formatTick(top/2))))
		default:
			line.WriteString(strings.Repeat(" ", axisWidth))
		}
		line.WriteString(chartAxisStyle.Render("│"))

		threshold := float64(row) / float64(height) * top
		half := threshold - top/float64(height)/2
		for _, v := range c.data {
			line.WriteString(strings.Repeat(" ", pad))
			switch {
			case v >= threshold:
				line.WriteString(chartBarStyle.Render(strings.Repeat("█", barWidth)))
			case v > 0 && v >= half:
				line.WriteString(chartBarStyle.Render(strings.Repeat("▄", barWidth)))
			default:
				line.WriteString(strings.Repeat(" ", barWidth))
			}
			line.WriteString(strings.Repeat(" ", slot-pad-barWidth))
		}
		s.WriteString(line.String() + "\n")
	}

	// x axis with zero and category labels
	s.WriteString(chartAxisStyle.Render(fmt.Sprintf("%*s", axisWidth, "0")+"└"+strings.Repeat("─", slot*len(c.data))) + "\n")
	var labels strings.Builder
	labels.WriteString(strings.Repeat(" ", axisWidth+1))
	for _, l := range c.labels {
		labels.WriteString(fmt.Sprintf("%-*s", slot, centre(truncate(l, slot), slot)))
	}
	s.WriteString(chartAxisStyle.Render(labels.String()))

	return s.String()
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func centre(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s
}
