package main

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleSystem    = "system"
)

// pendingContent is the sentinel body of the transient entry that
// marks an in-flight request. It is removed, not overwritten, when
// the next message of any kind arrives.
const pendingContent = "Waiting for response..."

// contentIndent prefixes message bodies in the styled transcript.
const contentIndent = "    "

// Message is a single immutable transcript entry.
type Message struct {
	ID        string
	Role      string
	Content   string
	Timestamp string
}

// newMessage builds a Message stamped with the current wall-clock time.
func newMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format("15:04:05"),
	}
}

// header returns the per-message "[hh:mm:ss] Role: " prefix.
func (m Message) header() string {
	display := "System"
	switch m.Role {
	case roleUser:
		display = "You"
	case roleAssistant:
		display = "AI"
	}
	return "[" + m.Timestamp + "] " + display + ": "
}

// Transcript is the ordered conversation log. It only grows for the
// lifetime of the process; the sole removal path is the pending
// placeholder, which lives at most once and always at the tail.
type Transcript struct {
	messages []Message
}

// NewTranscript returns an empty conversation log.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns the log in display order.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Append inserts a message at the tail, removing a trailing pending
// placeholder first. It reports whether the appended message came from
// the assistant, which callers use to clear the loading state.
func (t *Transcript) Append(msg Message) bool {
	if n := len(t.messages); n > 0 && t.messages[n-1].Content == pendingContent {
		t.messages = t.messages[:n-1]
	}
	t.messages = append(t.messages, msg)
	return msg.Role == roleAssistant
}

// LastAssistantContent returns the content of the most recent
// assistant message, scanning from the tail.
func (t *Transcript) LastAssistantContent() (string, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == roleAssistant {
			return t.messages[i].Content, true
		}
	}
	return "", false
}

// PlainText renders the whole transcript as width-wrapped plain text,
// with continuation lines indented under each message header. The
// scroll controller uses its line count as the content height.
func (t *Transcript) PlainText(width int) string {
	var b strings.Builder
	for _, msg := range t.messages {
		for _, line := range formatEntry(msg.header(), msg.Content, width) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// StyledLines renders the transcript for display: a styled header line
// per message, assistant bodies through the markup renderer, other
// bodies as indented plain text, and a blank separator line after each
// message.
func (t *Transcript) StyledLines(width int, theme *Theme) []styledLine {
	var lines []styledLine
	bodyWidth := width - len(contentIndent)

	for _, msg := range t.messages {
		lines = append(lines, styledLine{segments: []segment{
			{text: msg.header(), style: theme.Header},
		}})

		if msg.Role == roleAssistant {
			for _, line := range renderMarkup(tokenizeMarkup(msg.Content), theme) {
				indented := styledLine{segments: make([]segment, 0, len(line.segments)+1)}
				indented.segments = append(indented.segments, segment{text: contentIndent, style: theme.Text})
				indented.segments = append(indented.segments, line.segments...)
				lines = append(lines, indented)
			}
		} else {
			for _, line := range wrapText(msg.Content, bodyWidth) {
				lines = append(lines, styledLine{segments: []segment{
					{text: contentIndent, style: theme.Text},
					{text: line, style: theme.Text},
				}})
			}
		}

		lines = append(lines, styledLine{})
	}
	return lines
}
