package main

// InputHistory tracks previously submitted prompts and supports
// up/down recall with a saved draft of the in-progress input.
type InputHistory struct {
	entries []string
	cursor  int // -1 when not navigating
	draft   string
}

// NewInputHistory returns an empty history.
func NewInputHistory() *InputHistory {
	return &InputHistory{cursor: -1}
}

// Record appends a submitted prompt, skipping empty strings and
// entries identical to the immediately preceding one.
func (h *InputHistory) Record(input string) {
	if input == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == input {
		return
	}
	h.entries = append(h.entries, input)
}

// Navigating reports whether a recall is in progress.
func (h *InputHistory) Navigating() bool {
	return h.cursor >= 0
}

// Navigate moves the recall cursor. On the first "up" from a
// non-navigating state it snapshots the current draft and lands on the
// newest entry; further "up" presses walk toward older entries,
// stopping at the oldest. "Down" walks back toward newer entries, and
// stepping past the newest restores the saved draft and ends
// navigation. The returned bool reports whether the input should be
// replaced with the returned text.
func (h *InputHistory) Navigate(up bool, current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.cursor < 0 {
		if !up {
			return "", false
		}
		h.draft = current
		h.cursor = len(h.entries) - 1
		return h.entries[h.cursor], true
	}

	if up {
		if h.cursor > 0 {
			h.cursor--
		}
		return h.entries[h.cursor], true
	}

	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor], true
	}

	draft := h.draft
	h.Reset()
	return draft, true
}

// Reset ends navigation and discards the saved draft.
func (h *InputHistory) Reset() {
	h.cursor = -1
	h.draft = ""
}
