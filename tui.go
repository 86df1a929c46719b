package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// focusTarget identifies which pane receives Up/Down and editing keys.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusHistory
)

// modalState is the single exclusive UI mode. Exactly one value is
// active at a time; key routing checks it in precedence order.
type modalState int

const (
	modalNone modalState = iota
	modalHelp
	modalConfig
	modalModelSelect
)

// deliveryMsg carries one message from the dispatcher into the update
// loop.
type deliveryMsg Message

// waitTickMsg drives the elapsed-wait indicator while a request is in
// flight.
type waitTickMsg time.Time

func waitTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return waitTickMsg(t)
	})
}

// TUIModel is the main application model
type TUIModel struct {
	config Config
	theme  *Theme

	width  int
	height int

	input      textinput.Model
	tokenDraft textinput.Model

	transcript *Transcript
	history    *InputHistory
	dispatcher *Dispatcher
	status     StatusComponent

	focus focusTarget
	modal modalState

	currentModel string
	modelIdx     int

	scrollOffset int
	loading      bool
}

// NewTUIModel creates a new TUI model
func NewTUIModel(config Config, apiURL, model string) *TUIModel {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Focus()

	tokenDraft := textinput.New()
	tokenDraft.Placeholder = "Paste your API token"

	if model == "" {
		model = defaultModel
	}

	theme := NewTheme()
	status := NewStatusComponent(0)
	status.Style = theme.Status
	status.SetModel(model)
	status.SetToken(config.AuthToken != "")

	return &TUIModel{
		config:       config,
		theme:        theme,
		input:        input,
		tokenDraft:   tokenDraft,
		transcript:   NewTranscript(),
		history:      NewInputHistory(),
		dispatcher:   NewDispatcher(apiURL),
		status:       status,
		currentModel: model,
	}
}

// awaitDelivery blocks on the dispatcher channel and converts the next
// arrival into a bubbletea message. Re-armed after every delivery so
// the update loop stays the channel's only consumer.
func (m *TUIModel) awaitDelivery() tea.Msg {
	return deliveryMsg(<-m.dispatcher.Deliveries())
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return m.awaitDelivery
}

// Update handles messages and updates the model
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		m.tokenDraft.Width = 40
		m.status.SetWidth(msg.Width)
		m.scrollToBottom()
		return m, nil

	case deliveryMsg:
		m.applyMessage(Message(msg))
		return m, m.awaitDelivery

	case waitTickMsg:
		if m.loading {
			return m, waitTick()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.modal {
		case modalHelp:
			return m.updateHelp(msg)
		case modalConfig:
			return m.updateConfig(msg)
		case modalModelSelect:
			return m.updateModelSelect(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m *TUIModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		if m.focus == focusInput {
			m.focus = focusHistory
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case "enter":
		if m.focus == focusInput {
			return m, m.submitPrompt()
		}
		return m, nil

	case "up":
		if m.focus == focusHistory {
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}
		} else {
			if recalled, ok := m.history.Navigate(true, m.input.Value()); ok {
				m.input.SetValue(recalled)
				m.input.CursorEnd()
			}
		}
		return m, nil

	case "down":
		if m.focus == focusHistory {
			// Not clamped here; the next append or resize pulls
			// the offset back into range.
			m.scrollOffset++
		} else {
			if recalled, ok := m.history.Navigate(false, m.input.Value()); ok {
				m.input.SetValue(recalled)
				m.input.CursorEnd()
			}
		}
		return m, nil

	case "alt+h":
		m.modal = modalHelp
		return m, nil

	case "alt+c":
		m.tokenDraft.SetValue(m.config.AuthToken)
		m.tokenDraft.CursorEnd()
		m.tokenDraft.Focus()
		m.modal = modalConfig
		return m, nil

	case "alt+m":
		m.modelIdx = modelIndex(m.currentModel)
		m.modal = modalModelSelect
		return m, nil

	case "alt+y":
		if m.focus == focusHistory {
			m.copyLastAnswer()
		}
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TUIModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Any other key dismisses the help popup.
	m.modal = modalNone
	return m, nil
}

func (m *TUIModel) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.tokenDraft.Blur()
		m.modal = modalNone
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.config.AuthToken = strings.TrimSpace(m.tokenDraft.Value())
		m.status.SetToken(m.config.AuthToken != "")
		if err := SaveConfig(&m.config); err != nil {
			slog.Error("failed to save config", "error", err)
			m.appendMessage(newMessage(roleSystem, fmt.Sprintf("Failed to save config: %v", err)))
		} else {
			m.appendMessage(newMessage(roleSystem, "Token saved."))
		}
		m.tokenDraft.Blur()
		m.modal = modalNone
		return m, nil
	}

	var cmd tea.Cmd
	m.tokenDraft, cmd = m.tokenDraft.Update(msg)
	return m, cmd
}

func (m *TUIModel) updateModelSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "alt+m":
		m.modal = modalNone
	case "ctrl+c":
		return m, tea.Quit
	case "up":
		if m.modelIdx > 0 {
			m.modelIdx--
		}
	case "down":
		if m.modelIdx < len(availableModels)-1 {
			m.modelIdx++
		}
	case "enter":
		m.currentModel = availableModels[m.modelIdx]
		m.status.SetModel(m.currentModel)
		m.appendMessage(newMessage(roleSystem, "Switched to model: "+m.currentModel))
		m.modal = modalNone
	}
	return m, nil
}

// submitPrompt validates and sends the current input line, returning
// the tick command that keeps the wait indicator advancing. Empty
// input is ignored; a missing token produces a system message and
// leaves the input untouched so nothing typed is lost.
func (m *TUIModel) submitPrompt() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}

	if m.config.AuthToken == "" {
		m.appendMessage(newMessage(roleSystem, "No API token configured. Press Alt+C to set one."))
		return nil
	}

	m.history.Record(text)
	m.history.Reset()

	m.appendMessage(newMessage(roleUser, text))
	m.appendMessage(newMessage(roleSystem, pendingContent))

	m.loading = true
	m.status.StartWaiting()
	m.input.SetValue("")

	slog.Debug("dispatching prompt", "model", m.currentModel, "chars", len(text))
	m.dispatcher.Dispatch(m.config.AuthToken, m.currentModel, text)
	return waitTick()
}

// applyMessage folds a delivered message into the transcript.
func (m *TUIModel) applyMessage(msg Message) {
	assistant := m.transcript.Append(msg)
	if assistant {
		m.loading = false
		m.status.StopWaiting()
	}
	m.scrollToBottom()
}

// appendMessage adds a locally generated message and keeps the view
// pinned to the newest content.
func (m *TUIModel) appendMessage(msg Message) {
	m.transcript.Append(msg)
	m.scrollToBottom()
}

func (m *TUIModel) copyLastAnswer() {
	content, ok := m.transcript.LastAssistantContent()
	if !ok {
		m.appendMessage(newMessage(roleSystem, "No answer to copy yet."))
		return
	}
	if err := clipboard.WriteAll(content); err != nil {
		m.appendMessage(newMessage(roleSystem, fmt.Sprintf("Copy failed: %v", err)))
		return
	}
	m.appendMessage(newMessage(roleSystem, "Copied last answer to clipboard."))
}

func (m *TUIModel) scrollToBottom() {
	content := m.historyContentHeight()
	viewport := m.historyViewportHeight()
	m.scrollOffset = clampScroll(content, viewport, content)
}

// historyContentHeight counts transcript lines at the current width.
func (m *TUIModel) historyContentHeight() int {
	width := m.historyContentWidth()
	text := m.transcript.PlainText(width)
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

func (m *TUIModel) historyContentWidth() int {
	w := m.width - 4
	if w < 1 {
		w = 1
	}
	return w
}

// historyViewportHeight is the inner height of the history pane: total
// height minus the input pane, the status line, the pane borders and
// the pane title line.
func (m *TUIModel) historyViewportHeight() int {
	h := m.height - m.inputPaneHeight() - 1 - 2 - 1
	if h < 1 {
		h = 1
	}
	return h
}

// inputPaneHeight reserves roughly the bottom third for the input
// pane, never less than a bordered title plus one edit line.
func (m *TUIModel) inputPaneHeight() int {
	h := m.height * 3 / 10
	if h < 4 {
		h = 4
	}
	return h
}
