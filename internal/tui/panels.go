package tui

import (
	"fmt"
	"strings"

	"github.com/rusenback/accident-monitor/internal/geomap"
	"github.com/rusenback/accident-monitor/internal/model"
)

// renderVideoPanel renders the video source, the live counter and the
// stats chart
func (m Model) renderVideoPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("🎥 Video Feed") + "\n\n")
	s.WriteString(fmt.Sprintf("Source: %s\n", m.source))
	s.WriteString(linkStyle.Render(truncate(m.FeedURL(), maxInt(width-8, 10))) + "\n\n")

	counter := m.counter
	if counter == "" {
		counter = "Loading stats..."
	}
	s.WriteString(counterStyle.Render(counter) + "\n\n")

	chartHeight := height - 14
	if chartHeight < 3 {
		chartHeight = 3
	}
	s.WriteString(m.chart.render(width-8, chartHeight))

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderMapPanel renders the marker map and the popup of the selected row
func (m Model) renderMapPanel(width, height int) string {
	var s strings.Builder

	center := m.geo.Center()
	s.WriteString(titleStyle.Render("🗺  Map") + dimStyle.Render(fmt.Sprintf(
		"  zoom %d · %.4f, %.4f", m.geo.Zoom(), center.Lat, center.Lng)) + "\n")

	gridWidth := maxInt(width-8, 10)
	gridHeight := maxInt(height-14, 3)

	selected := m.selectedMarker()
	grid := m.geo.Render(gridWidth, gridHeight, func(mk *geomap.Marker) string {
		if mk == selected {
			return selectedMarkerStyle.Render("◉")
		}
		return markerStyle.Render("●")
	})
	s.WriteString(grid + "\n")

	offScreen := 0
	for _, p := range m.geo.Place(gridWidth, gridHeight) {
		if !p.Visible {
			offScreen++
		}
	}
	summary := fmt.Sprintf("%d markers", m.MarkerCount())
	if offScreen > 0 {
		summary += fmt.Sprintf(" (%d off-screen)", offScreen)
	}
	s.WriteString(summary + "\n")

	if selected != nil {
		s.WriteString(selectedMarkerStyle.Render(strings.ReplaceAll(selected.Popup(), "\n", " · ")) + "\n")
	} else {
		s.WriteString("\n")
	}

	s.WriteString(dimStyle.Render(truncate(m.geo.Attribution()+" · "+m.geo.CenterTileURL(), gridWidth)))

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderGraphPanel renders the counter history
func (m Model) renderGraphPanel(width, height int) string {
	data := m.countHistory
	if m.storage != nil && len(m.history) > 0 {
		data = make([]float64, len(m.history))
		for i, dp := range m.history {
			data[i] = float64(dp.AccidentCount)
		}
	}

	content := renderHistoryGraph(data, width-8, height-8, m.timeRange, m.alertsInRange, m.storage != nil)

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderLogPanel renders the detection log table
func (m Model) renderLogPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📋 Accident Log") + "\n\n")

	if len(m.logs) == 0 {
		s.WriteString("No accidents logged yet...")
		return panelStyle.
			Width(width - 4).
			Height(height - 4).
			Render(s.String())
	}

	cols := logColumns(width - 10)
	s.WriteString(headerStyle.Render(formatLogRow(cols, logHeader)) + "\n")

	visibleRows := maxInt(height-10, 1)
	start, end := visibleWindow(len(m.logs), m.logCursor, visibleRows)
	for i := start; i < end; i++ {
		cells := make([]string, model.LogEntryFields)
		for f := range cells {
			cells[f] = m.logs[i].Cell(f)
		}
		line := formatLogRow(cols, cells)
		if i == m.logCursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
	}

	if len(m.logs) > visibleRows {
		s.WriteString(dimStyle.Render(fmt.Sprintf("[%d/%d]", m.logCursor+1, len(m.logs))))
	}

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}
