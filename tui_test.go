package main

import (
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, apiURL string) *TUIModel {
	t.Helper()
	m := NewTUIModel(Config{AuthToken: "test-token"}, apiURL, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func typeText(m *TUIModel, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestViewBeforeFirstResize(t *testing.T) {
	m := NewTUIModel(Config{}, "http://unused", "")
	require.Equal(t, "Initializing...", m.View())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, "http://unused")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTabTogglesFocus(t *testing.T) {
	m := newTestModel(t, "http://unused")
	require.Equal(t, focusInput, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusHistory, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusInput, m.focus)
}

func TestDefaultModel(t *testing.T) {
	m := newTestModel(t, "http://unused")
	require.Equal(t, "deepseek-r1", m.currentModel)
}

func TestStatusBarUsesThemeStyle(t *testing.T) {
	m := newTestModel(t, "http://unused")
	require.Equal(t, m.theme.Status, m.status.Style)
}

func TestHelpPopupOpensAndCloses(t *testing.T) {
	m := newTestModel(t, "http://unused")
	m.Update(altKey('h'))
	require.Equal(t, modalHelp, m.modal)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modalNone, m.modal)
}

func TestPopupsAreExclusive(t *testing.T) {
	m := newTestModel(t, "http://unused")
	m.Update(altKey('h'))
	require.Equal(t, modalHelp, m.modal)

	// Any key dismisses help without triggering its normal-mode binding.
	m.Update(altKey('m'))
	require.Equal(t, modalNone, m.modal)

	m.Update(altKey('m'))
	require.Equal(t, modalModelSelect, m.modal)

	// While model select is open, other popup bindings are inert.
	m.Update(altKey('h'))
	require.Equal(t, modalModelSelect, m.modal)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modalNone, m.modal)
}

func TestModelSelectClampAndConfirm(t *testing.T) {
	m := newTestModel(t, "http://unused")
	m.Update(altKey('m'))
	require.Equal(t, modalModelSelect, m.modal)
	require.Equal(t, modelIndex("deepseek-r1"), m.modelIdx)

	// Up from the top saturates
	start := m.modelIdx
	for i := 0; i <= start; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	require.Equal(t, 0, m.modelIdx)

	// Down past the end saturates
	for i := 0; i < len(availableModels)+5; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, len(availableModels)-1, m.modelIdx)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modalNone, m.modal)
	require.Equal(t, availableModels[len(availableModels)-1], m.currentModel)

	content, ok := m.transcript.LastAssistantContent()
	require.False(t, ok, "model switch notice is a system message, got %q", content)
	last := m.transcript.Messages()[m.transcript.Len()-1]
	require.Equal(t, roleSystem, last.Role)
	require.Contains(t, last.Content, "Switched to model:")
}

func TestModelSelectEscCancels(t *testing.T) {
	m := newTestModel(t, "http://unused")
	m.Update(altKey('m'))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.Equal(t, modalNone, m.modal)
	require.Equal(t, "deepseek-r1", m.currentModel)
	require.Equal(t, 0, m.transcript.Len())
}

func TestSubmitEmptyInputIgnored(t *testing.T) {
	m := newTestModel(t, "http://unused")
	typeText(m, "   ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 0, m.transcript.Len())
	require.False(t, m.loading)
}

func TestSubmitWithoutTokenShortCircuits(t *testing.T) {
	m := NewTUIModel(Config{}, "http://unused", "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	typeText(m, "hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 1, m.transcript.Len())
	require.Equal(t, roleSystem, m.transcript.Messages()[0].Role)
	require.False(t, m.loading)
	// The typed text stays so it can be sent after configuring a token.
	require.Equal(t, "hello", m.input.Value())
}

func TestSubmitAppendsUserAndPlaceholder(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "hi there"))
	defer server.Close()

	m := newTestModel(t, server.URL)
	typeText(m, "hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 2, m.transcript.Len())
	msgs := m.transcript.Messages()
	require.Equal(t, roleUser, msgs[0].Role)
	require.Equal(t, "hello", msgs[0].Content)
	require.Equal(t, roleSystem, msgs[1].Role)
	require.Equal(t, pendingContent, msgs[1].Content)
	require.True(t, m.loading)
	require.Empty(t, m.input.Value())

	// While the request is in flight, Alt+Y has nothing to copy.
	_, ok := m.transcript.LastAssistantContent()
	require.False(t, ok)
}

func TestDeliveryReplacesPlaceholderAndClearsLoading(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "hi there"))
	defer server.Close()

	m := newTestModel(t, server.URL)
	typeText(m, "hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var delivered Message
	select {
	case delivered = <-m.dispatcher.Deliveries():
	case <-time.After(5 * time.Second):
		t.Fatal("no delivery arrived")
	}

	_, cmd := m.Update(deliveryMsg(delivered))
	require.NotNil(t, cmd, "the delivery listener re-arms after each message")

	require.Equal(t, 2, m.transcript.Len())
	last := m.transcript.Messages()[1]
	require.Equal(t, roleAssistant, last.Role)
	require.Equal(t, "hi there", last.Content)
	require.False(t, m.loading)
}

func TestWaitTickRunsWhileLoading(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "hi there"))
	defer server.Close()

	m := newTestModel(t, server.URL)
	typeText(m, "hello")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "submitting arms the wait ticker")

	// The ticker re-arms itself for as long as the request is pending
	// and elapsed time shows in the status line.
	m.status.waitingSince = time.Now().Add(-2 * time.Second)
	_, cmd = m.Update(waitTickMsg(time.Now()))
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "⏳ 2s")

	var delivered Message
	select {
	case delivered = <-m.dispatcher.Deliveries():
	case <-time.After(5 * time.Second):
		t.Fatal("no delivery arrived")
	}
	m.Update(deliveryMsg(delivered))

	_, cmd = m.Update(waitTickMsg(time.Now()))
	require.Nil(t, cmd, "the ticker stops once the response has landed")
	require.NotContains(t, m.View(), "⏳")
}

func TestHistoryRecallThroughKeys(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "ok"))
	defer server.Close()

	m := newTestModel(t, server.URL)
	typeText(m, "first")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "second")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "second", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "first", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "second", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Empty(t, m.input.Value())
}

func TestHistoryPaneScrollKeys(t *testing.T) {
	m := newTestModel(t, "http://unused")
	// Enough content to overflow the viewport
	for i := 0; i < 40; i++ {
		m.appendMessage(newMessage(roleSystem, "line of conversation history"))
	}
	bottom := m.scrollOffset
	require.Greater(t, bottom, 0)

	m.Update(tea.KeyMsg{Type: tea.KeyTab}) // focus history
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, bottom-1, m.scrollOffset)

	// Up saturates at the top
	for i := 0; i < bottom+10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	require.Equal(t, 0, m.scrollOffset)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.scrollOffset)

	// A new message snaps the view back to the bottom.
	m.appendMessage(newMessage(roleSystem, "fresh arrival"))
	require.GreaterOrEqual(t, m.scrollOffset, bottom)
}

func TestConfigPopupSavesToken(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m := newTestModel(t, "http://unused")
	m.Update(altKey('c'))
	require.Equal(t, modalConfig, m.modal)
	require.Equal(t, "test-token", m.tokenDraft.Value())

	m.tokenDraft.SetValue("fresh-token")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modalNone, m.modal)
	require.Equal(t, "fresh-token", m.config.AuthToken)

	saved, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "fresh-token", saved.AuthToken)
}

func TestConfigPopupEscDiscards(t *testing.T) {
	m := newTestModel(t, "http://unused")
	m.Update(altKey('c'))
	m.tokenDraft.SetValue("abandoned")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.Equal(t, modalNone, m.modal)
	require.Equal(t, "test-token", m.config.AuthToken)
}

func TestViewShowsPanes(t *testing.T) {
	m := newTestModel(t, "http://unused")
	view := m.View()
	require.Contains(t, view, "Conversation")
	require.Contains(t, view, "Model: ")
	require.Contains(t, view, "deepseek-r1")

	m.Update(altKey('h'))
	require.Contains(t, m.View(), "Keyboard Shortcuts")
}
