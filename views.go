package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m *TUIModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.modal {
	case modalHelp:
		return m.overlay(m.renderHelpPopup())
	case modalConfig:
		return m.overlay(m.renderConfigPopup())
	case modalModelSelect:
		return m.overlay(m.renderModelPopup())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHistoryPane(),
		m.renderInputPane(),
		m.status.View(),
	)
}

// overlay centers a popup on an otherwise empty screen. Popups are
// exclusive: while one is open it owns the whole display.
func (m *TUIModel) overlay(popup string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup)
}

func (m *TUIModel) renderHistoryPane() string {
	viewport := m.historyViewportHeight()

	lines := m.transcript.StyledLines(m.historyContentWidth(), m.theme)
	rendered := make([]string, 0, len(lines))
	for _, ln := range lines {
		rendered = append(rendered, ln.render())
	}

	start := m.scrollOffset
	if start > len(rendered) {
		start = len(rendered)
	}
	if start < 0 {
		start = 0
	}
	end := start + viewport
	if end > len(rendered) {
		end = len(rendered)
	}
	visible := rendered[start:end]

	title := m.theme.PaneTitle.Render("Conversation")
	body := title
	if len(visible) > 0 {
		body += "\n" + strings.Join(visible, "\n")
	}

	border := m.theme.BlurredBorder
	if m.focus == focusHistory {
		border = m.theme.FocusedBorder
	}
	return border.
		Width(m.width - 2).
		Height(viewport + 1).
		Padding(0, 1).
		Render(body)
}

func (m *TUIModel) renderInputPane() string {
	title := "Message (Enter to send, Alt+H for help)"
	if m.loading {
		title = "Waiting for response..."
	}

	border := m.theme.BlurredBorder
	if m.focus == focusInput {
		border = m.theme.FocusedBorder
	}
	body := m.theme.PaneTitle.Render(title) + "\n" + m.input.View()
	return border.
		Width(m.width - 2).
		Height(m.inputPaneHeight() - 2).
		Padding(0, 1).
		Render(body)
}

func (m *TUIModel) renderHelpPopup() string {
	rows := []string{
		m.theme.PopupTitle.Render("Keyboard Shortcuts"),
		"",
		"Enter      Send message",
		"Tab        Switch focus between input and history",
		"Up/Down    Recall input history / scroll history",
		"Alt+H      Toggle this help",
		"Alt+C      Configure API token",
		"Alt+M      Select model",
		"Alt+Y      Copy last answer (history focused)",
		"Esc        Close popup / quit",
		"Ctrl+C     Quit",
		"",
		"Press Esc to close",
	}
	return m.theme.PopupBorder.Padding(1, 2).Render(strings.Join(rows, "\n"))
}

func (m *TUIModel) renderConfigPopup() string {
	rows := []string{
		m.theme.PopupTitle.Render("API Token"),
		"",
		m.tokenDraft.View(),
		"",
		"Enter to save, Esc to cancel",
	}
	return m.theme.PopupBorder.Padding(1, 2).Render(strings.Join(rows, "\n"))
}

// modelWindow is how many catalog entries the model popup shows at
// once; the window slides to keep the selection visible.
const modelWindow = 12

func (m *TUIModel) renderModelPopup() string {
	start := 0
	if m.modelIdx >= modelWindow {
		start = m.modelIdx - modelWindow + 1
	}
	end := start + modelWindow
	if end > len(availableModels) {
		end = len(availableModels)
	}

	rows := []string{
		m.theme.PopupTitle.Render(fmt.Sprintf("Select Model (%d/%d)", m.modelIdx+1, len(availableModels))),
		"",
	}
	for i := start; i < end; i++ {
		name := availableModels[i]
		if i == m.modelIdx {
			rows = append(rows, m.theme.Selected.Render("> "+name))
		} else {
			rows = append(rows, "  "+name)
		}
	}
	rows = append(rows, "", "Enter to switch, Esc to cancel")
	return m.theme.PopupBorder.Padding(1, 2).Render(strings.Join(rows, "\n"))
}
