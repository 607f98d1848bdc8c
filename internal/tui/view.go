package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// A blocking dialog covers everything
	if m.modal != "" {
		return m.renderModal()
	}

	var top []string
	if m.alert.visible() {
		top = append(top, m.renderAlert())
	}

	footer := m.renderFooter()
	used := len(top) + lipgloss.Height(footer)

	body := m.renderFourPanelView(m.width, maxInt(m.height-used, 10))

	parts := append(top, body, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderFourPanelView renders the four-panel grid layout
func (m Model) renderFourPanelView(width, height int) string {
	// 45% left, 55% right; 50/50 rows
	leftWidth := int(float64(width) * 0.45)
	rightWidth := width - leftWidth

	topHeight := height / 2
	bottomHeight := height - topHeight

	topLeftPanel := m.renderVideoPanel(leftWidth, topHeight)
	topRightPanel := m.renderMapPanel(rightWidth, topHeight)
	bottomLeftPanel := m.renderGraphPanel(leftWidth, bottomHeight)
	bottomRightPanel := m.renderLogPanel(rightWidth, bottomHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, topLeftPanel, topRightPanel)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, bottomLeftPanel, bottomRightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
}

// renderAlert draws the accident banner in its current blink phase
func (m Model) renderAlert() string {
	style := alertOffStyle
	if m.alert.blinkOn {
		style = alertOnStyle
	}
	return style.Width(m.width).Render("⚠ " + m.alert.text)
}

// renderModal draws the blocking dialog in the middle of the screen
func (m Model) renderModal() string {
	box := modalStyle.Render(m.modal + "\n\n" + dimStyle.Render("[Enter] OK"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderFooter is the prompt line when one is open, key help otherwise
func (m Model) renderFooter() string {
	switch m.prompt {
	case promptUpload:
		return promptStyle.Render("Video file: "+m.promptInput+"█") +
			dimStyle.Render("  [Enter] upload [Esc] cancel")
	case promptSource:
		return promptStyle.Render("Source: "+m.promptInput+"█") +
			dimStyle.Render("  [Enter] switch [Esc] cancel")
	}

	help := []string{
		"[↑/k] up", "[↓/j] down", "[u] upload", "[v] source", "[w] webcam",
		"[+/-] zoom", "[0] reset map", "[r] refresh", "[q] quit",
	}
	return dimStyle.Render(strings.Join(help, "  "))
}
