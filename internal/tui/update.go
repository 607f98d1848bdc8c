package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rusenback/accident-monitor/internal/storage"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusTickMsg:
		cmds := []tea.Cmd{statusTickCmd(m.cfg.StatusInterval)}
		// A modal blocks the page, timers included
		if m.modal == "" && !m.statusInFlight {
			m.statusInFlight = true
			cmds = append(cmds, checkForAccident(m.client))
		}
		return m, tea.Batch(cmds...)

	case refreshTickMsg:
		cmds := []tea.Cmd{refreshTickCmd(m.cfg.RefreshInterval)}
		if m.modal == "" {
			cmds = append(cmds, m.startRefresh())
		}
		return m, tea.Batch(cmds...)

	case accidentStatusMsg:
		m.statusInFlight = false
		return m, m.handleAccidentStatus(msg)

	case logsMsg:
		m.logsInFlight = false
		if msg.err != nil {
			m.log.Debug("logs refresh failed", zap.Error(msg.err))
			return m, nil
		}
		m.loadLogs(msg.logs)

	case statsMsg:
		m.statsInFlight = false
		if msg.err != nil {
			m.log.Debug("stats refresh failed", zap.Error(msg.err))
			return m, nil
		}
		return m, m.loadStats(msg.stats)

	case uploadMsg:
		m.handleUpload(msg)

	case hideAlertMsg:
		m.alert.hide()

	case blinkMsg:
		if !m.alert.blinking || msg.gen != m.alert.gen {
			return m, nil
		}
		m.alert.blinkOn = !m.alert.blinkOn
		return m, blinkCmd(m.cfg.BlinkInterval, msg.gen)

	case historyMsg:
		if msg.err != nil {
			m.log.Warn("history query failed", zap.Error(msg.err))
			return m, nil
		}
		m.history = msg.points
		m.alertsInRange = msg.alerts
	}

	return m, nil
}

// handleKey routes key presses to the modal, the prompt or the dashboard
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Blocking dialog: nothing else until it is dismissed
	if m.modal != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.modal = ""
		}
		return m, nil
	}

	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "r":
		return m, m.startRefresh()

	case "u":
		m.prompt = promptUpload
		m.promptInput = ""

	case "v":
		m.prompt = promptSource
		m.promptInput = ""

	case "w":
		m.changeSource("webcam")

	case "up", "k":
		if m.logCursor > 0 {
			m.logCursor--
		}

	case "down", "j":
		if m.logCursor < len(m.logs)-1 {
			m.logCursor++
		}

	case "+", "=":
		m.geo.ZoomIn()
	case "-":
		m.geo.ZoomOut()
	case "0":
		m.geo.ResetView()

	case "1", "2", "3", "4", "5":
		m.timeRange = storage.TimeRange(msg.String()[0] - '1')
		return m, fetchHistory(m.storage, m.timeRange)
	}

	return m, nil
}

// handlePromptKey edits the input line
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = promptNone
		m.promptInput = ""

	case tea.KeyEnter:
		kind, input := m.prompt, m.promptInput
		m.prompt = promptNone
		m.promptInput = ""

		switch kind {
		case promptUpload:
			return m, m.submitUpload(input)
		case promptSource:
			m.changeSource(input)
		}

	case tea.KeyBackspace:
		if r := []rune(m.promptInput); len(r) > 0 {
			m.promptInput = string(r[:len(r)-1])
		}

	case tea.KeySpace:
		m.promptInput += " "

	case tea.KeyRunes:
		m.promptInput += string(msg.Runes)
	}

	return m, nil
}
