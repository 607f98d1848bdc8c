package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/accident-monitor/internal/backend"
	"github.com/rusenback/accident-monitor/internal/storage"
)

// statusTickCmd fires the accident status poll
func statusTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// refreshTickCmd fires the logs + stats refresh
func refreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// hideAlertCmd hides the alert overlay after d, whatever happened meanwhile
func hideAlertCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return hideAlertMsg{}
	})
}

// blinkCmd flips the alert emphasis after d for blink loop gen
func blinkCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return blinkMsg{gen: gen}
	})
}

// fetchLogs creates a command to fetch the detection log
func fetchLogs(client backend.BackendClient) tea.Cmd {
	return func() tea.Msg {
		logs, err := client.FetchLogs(context.Background())
		return logsMsg{logs: logs, err: err}
	}
}

// fetchStats creates a command to fetch the accident counter
func fetchStats(client backend.BackendClient) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.FetchStats(context.Background())
		return statsMsg{stats: stats, err: err}
	}
}

// checkForAccident creates a command to poll the accident status
func checkForAccident(client backend.BackendClient) tea.Cmd {
	return func() tea.Msg {
		status, err := client.FetchAccidentStatus(context.Background())
		return accidentStatusMsg{status: status, err: err}
	}
}

// uploadVideo creates a command to upload the file at path
func uploadVideo(client backend.BackendClient, path string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.UploadVideo(context.Background(), path)
		return uploadMsg{result: result, err: err}
	}
}

// fetchHistory reads the counter history and alert count for a range
func fetchHistory(store *storage.Storage, timeRange storage.TimeRange) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		store.Flush()
		points, err := store.Query(timeRange)
		if err != nil {
			return historyMsg{err: err}
		}
		alerts, err := store.CountAlerts(timeRange)
		return historyMsg{points: points, alerts: alerts, err: err}
	}
}

// recordAlert stores a positive accident poll
func recordAlert(store *storage.Storage, entry storage.AlertEntry) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.RecordAlert(entry); err != nil {
			return historyMsg{err: err}
		}
		return nil
	}
}
