package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rusenback/accident-monitor/internal/backend"
	"github.com/rusenback/accident-monitor/internal/geomap"
	"github.com/rusenback/accident-monitor/internal/model"
	"github.com/rusenback/accident-monitor/internal/storage"
)

const noFileMessage = "Please select a video file first."

// initMap sets the fixed initial view and the base tile layer
func (m *Model) initMap() {
	m.geo = geomap.New(m.cfg.MapCenter, m.cfg.MapZoom)
	m.geo.AddTileLayer(m.cfg.Tiles)
}

// changeSource points the video panel at another stream
func (m *Model) changeSource(source string) {
	m.source = source
	m.feedPath = backend.FeedPath(source)
}

// submitUpload validates the chosen file and starts the upload
func (m *Model) submitUpload(path string) tea.Cmd {
	path = expandHome(strings.TrimSpace(path))
	if err := backend.CheckVideoFile(path); err != nil {
		m.modal = noFileMessage
		return nil
	}
	m.log.Info("uploading video", zap.String("path", path))
	return uploadVideo(m.client, path)
}

// handleUpload applies the backend's answer to an upload
func (m *Model) handleUpload(msg uploadMsg) {
	if msg.err != nil || msg.result == nil {
		m.log.Error("upload error", zap.Error(msg.err))
		return
	}
	if msg.result.Filename != "" {
		m.log.Info("upload done", zap.String("filename", msg.result.Filename))
		m.changeSource(msg.result.Filename)
		return
	}
	m.modal = msg.result.FailureText()
}

// showAlert displays the overlay and schedules its own hide timer. Earlier
// timers are left running.
func (m *Model) showAlert(severity any) tea.Cmd {
	wasBlinking := m.alert.blinking
	m.alert.show(model.AlertText(severity))

	cmds := []tea.Cmd{hideAlertCmd(m.cfg.AlertDuration)}
	if !wasBlinking {
		// Ticks still pending from an earlier loop carry the old generation
		m.alert.gen++
		cmds = append(cmds, blinkCmd(m.cfg.BlinkInterval, m.alert.gen))
	}

	return tea.Batch(cmds...)
}

// handleAccidentStatus reacts to one status poll
func (m *Model) handleAccidentStatus(msg accidentStatusMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Debug("accident status poll failed", zap.Error(msg.err))
		return nil
	}
	if msg.status == nil || !msg.status.Accident {
		return nil
	}

	return tea.Batch(
		m.showAlert(msg.status.Severity),
		recordAlert(m.storage, storage.AlertEntry{
			Timestamp: time.Now(),
			Severity:  model.FormatValue(msg.status.Severity),
		}),
	)
}

// loadLogs replaces every table row and rebuilds the markers
func (m *Model) loadLogs(logs []model.LogEntry) {
	m.logs = logs
	if m.logCursor >= len(m.logs) {
		m.logCursor = len(m.logs) - 1
	}
	if m.logCursor < 0 {
		m.logCursor = 0
	}

	m.updateMapMarkers(logs)
}

// loadStats sets the counter and redraws the chart from scratch
func (m *Model) loadStats(stats *model.Stats) tea.Cmd {
	m.stats = stats
	m.counter = stats.CounterText()
	count, numeric := stats.Count()
	if !numeric {
		m.log.Debug("non-numeric accident count", zap.String("value", model.FormatValue(stats.AccidentCount)))
	}
	m.chart = newStatsChart(count)

	m.countHistory = append(m.countHistory, count)
	if len(m.countHistory) > m.maxDataPoints {
		m.countHistory = m.countHistory[len(m.countHistory)-m.maxDataPoints:]
	}

	if m.storage == nil || !numeric {
		return nil
	}
	ts := stats.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	m.storage.Write(&storage.StatsEntry{Timestamp: ts, AccidentCount: int(math.Round(count))})
	return fetchHistory(m.storage, m.timeRange)
}

// updateMapMarkers drops every marker and adds one per entry that has both
// coordinates
func (m *Model) updateMapMarkers(logs []model.LogEntry) {
	for _, mk := range m.markers {
		m.geo.RemoveLayer(mk)
	}
	m.markers = nil
	m.markerByRow = make(map[int]*geomap.Marker)

	for i, entry := range logs {
		if !entry.HasCoordinates() {
			continue
		}
		lat, lng, ok := entry.Coordinates()
		if !ok {
			m.log.Debug("skipping non-numeric coordinates",
				zap.String("id", entry.Cell(model.FieldID)),
				zap.String("lat", entry.Cell(model.FieldLatitude)),
				zap.String("lng", entry.Cell(model.FieldLongitude)),
			)
			continue
		}

		mk := geomap.NewMarker(geomap.LatLng{Lat: lat, Lng: lng}).
			BindPopup(model.PopupText(entry)).
			AddTo(m.geo)
		m.markers = append(m.markers, mk)
		m.markerByRow[i] = mk
	}
}

// MarkerCount is the number of markers currently on the map
func (m Model) MarkerCount() int {
	return len(m.markers)
}

// FeedURL is the absolute address of the current video stream
func (m Model) FeedURL() string {
	return m.client.VideoFeedURL(m.source)
}

// selectedMarker is the marker of the highlighted log row, if any
func (m Model) selectedMarker() *geomap.Marker {
	return m.markerByRow[m.logCursor]
}

// startRefresh fetches logs and stats unless they are still pending
func (m *Model) startRefresh() tea.Cmd {
	var cmds []tea.Cmd
	if !m.logsInFlight {
		m.logsInFlight = true
		cmds = append(cmds, fetchLogs(m.client))
	}
	if !m.statsInFlight {
		m.statsInFlight = true
		cmds = append(cmds, fetchStats(m.client))
	}
	return tea.Batch(cmds...)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
