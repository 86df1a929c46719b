package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText word-wraps text to the given display width, breaking at
// whitespace. A single token wider than the width is hard-split into
// width-sized chunks. Each input line is wrapped independently, so
// embedded newlines act as hard breaks. Widths are measured in terminal
// cells so wide runes count correctly.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			continue
		}

		var cur strings.Builder
		curWidth := 0
		flush := func() {
			if curWidth > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curWidth = 0
			}
		}

		for _, word := range words {
			w := runewidth.StringWidth(word)
			if w > width {
				flush()
				lines = append(lines, chunkWord(word, width)...)
				continue
			}
			if curWidth > 0 && curWidth+1+w > width {
				flush()
			}
			if curWidth > 0 {
				cur.WriteByte(' ')
				curWidth++
			}
			cur.WriteString(word)
			curWidth += w
		}
		flush()
	}
	return lines
}

// chunkWord splits a single oversized token into pieces of at most
// width display cells.
func chunkWord(word string, width int) []string {
	var chunks []string
	var cur strings.Builder
	curWidth := 0
	for _, r := range word {
		w := runewidth.RuneWidth(r)
		if curWidth+w > width && curWidth > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteRune(r)
		curWidth += w
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// formatEntry lays out a message under its header: the first content
// line follows the header, continuation lines get a hanging indent of
// the header's width. The content is wrapped to the space remaining
// after the header.
func formatEntry(header, content string, width int) []string {
	headerWidth := runewidth.StringWidth(header)
	contentWidth := width - headerWidth
	if contentWidth < 1 {
		contentWidth = 1
	}

	wrapped := wrapText(content, contentWidth)
	if len(wrapped) == 0 {
		return []string{header}
	}

	indent := strings.Repeat(" ", headerWidth)
	out := make([]string, 0, len(wrapped))
	out = append(out, header+wrapped[0])
	for _, line := range wrapped[1:] {
		out = append(out, indent+line)
	}
	return out
}
