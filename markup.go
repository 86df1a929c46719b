package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// The markup renderer works in two stages: tokenizeMarkup turns a text
// blob into a linear event stream, and renderMarkup folds that stream
// into styled lines in a single forward pass. Emphasis and strong are
// ambient: an open event toggles a style flag that colors subsequent
// text runs until the matching close, and closing a span never forces a
// line break. Only block-level closes and explicit breaks flush the
// current line.

type markupEventKind int

const (
	markupHeading markupEventKind = iota
	markupCodeOpen
	markupCodeClose
	markupListOpen
	markupListClose
	markupItem
	markupEmphasisOpen
	markupEmphasisClose
	markupStrongOpen
	markupStrongClose
	markupText
	markupBreak
)

type markupEvent struct {
	kind  markupEventKind
	level int    // heading level, 1-6
	text  string // text runs
}

// segment is a styled run of text within a line.
type segment struct {
	text  string
	style lipgloss.Style
}

// styledLine is an ordered sequence of styled segments.
type styledLine struct {
	segments []segment
}

// render returns the line with all segment styles applied.
func (l styledLine) render() string {
	var b strings.Builder
	for _, s := range l.segments {
		b.WriteString(s.style.Render(s.text))
	}
	return b.String()
}

// plain returns the unstyled text of the line.
func (l styledLine) plain() string {
	var b strings.Builder
	for _, s := range l.segments {
		b.WriteString(s.text)
	}
	return b.String()
}

// tokenizeMarkup converts a markdown subset into a flat event stream.
// Headings, fenced code blocks, bulleted lists, emphasis and strong are
// recognized; anything else passes through as plain text.
func tokenizeMarkup(src string) []markupEvent {
	var (
		events    []markupEvent
		inCode    bool
		listDepth int
		emphasis  bool
		strong    bool
	)

	closeLists := func(to int) {
		for listDepth > to {
			events = append(events, markupEvent{kind: markupListClose})
			listDepth--
		}
	}

	inline := func(text string) {
		var run strings.Builder
		flushRun := func() {
			if run.Len() > 0 {
				events = append(events, markupEvent{kind: markupText, text: run.String()})
				run.Reset()
			}
		}

		runes := []rune(text)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			switch {
			case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
				flushRun()
				if strong {
					events = append(events, markupEvent{kind: markupStrongClose})
				} else {
					events = append(events, markupEvent{kind: markupStrongOpen})
				}
				strong = !strong
				i++
			case r == '*' || r == '_':
				flushRun()
				if emphasis {
					events = append(events, markupEvent{kind: markupEmphasisClose})
				} else {
					events = append(events, markupEvent{kind: markupEmphasisOpen})
				}
				emphasis = !emphasis
			case r == '`':
				// Inline code markers are not styled; drop the marker,
				// keep the text.
			default:
				run.WriteRune(r)
			}
		}
		flushRun()
	}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				events = append(events, markupEvent{kind: markupCodeClose})
			} else {
				closeLists(0)
				events = append(events, markupEvent{kind: markupCodeOpen})
			}
			inCode = !inCode
			continue
		}

		if inCode {
			events = append(events,
				markupEvent{kind: markupText, text: line},
				markupEvent{kind: markupBreak})
			continue
		}

		if trimmed == "" {
			closeLists(0)
			events = append(events, markupEvent{kind: markupBreak})
			continue
		}

		if level := headingLevel(trimmed); level > 0 {
			closeLists(0)
			events = append(events, markupEvent{kind: markupHeading, level: level})
			inline(strings.TrimSpace(trimmed[level+1:]))
			events = append(events, markupEvent{kind: markupBreak})
			continue
		}

		if item, ok := listItemText(trimmed); ok {
			indent := len(line) - len(strings.TrimLeft(line, " "))
			depth := indent/2 + 1
			closeLists(depth)
			for listDepth < depth {
				events = append(events, markupEvent{kind: markupListOpen})
				listDepth++
			}
			events = append(events, markupEvent{kind: markupItem})
			inline(item)
			continue
		}

		closeLists(0)
		inline(trimmed)
		events = append(events, markupEvent{kind: markupBreak})
	}

	closeLists(0)
	return events
}

// headingLevel returns the heading level of a line starting with 1-6
// '#' runes followed by a space, or 0 when it is not a heading.
func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

// listItemText returns the content of a bulleted list item line.
func listItemText(trimmed string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):]), true
		}
	}
	return "", false
}

// renderMarkup folds the event stream into styled lines. The pass is
// stateless between calls, so re-rendering the same input each tick
// yields identical output.
func renderMarkup(events []markupEvent, theme *Theme) []styledLine {
	var (
		out       []styledLine
		cur       []segment
		inCode    bool
		listDepth int
		emphasis  bool
		strong    bool
	)

	flush := func() {
		if len(cur) > 0 {
			out = append(out, styledLine{segments: cur})
			cur = nil
		}
	}

	for _, ev := range events {
		switch ev.kind {
		case markupHeading:
			flush()
			marker := strings.Repeat("#", ev.level) + " "
			cur = append(cur, segment{text: marker, style: theme.Heading})
		case markupCodeOpen:
			flush()
			inCode = true
		case markupCodeClose:
			flush()
			inCode = false
		case markupListOpen:
			listDepth++
		case markupListClose:
			flush()
			if listDepth > 0 {
				listDepth--
			}
		case markupItem:
			flush()
			indent := strings.Repeat("  ", max(listDepth-1, 0))
			cur = append(cur, segment{text: indent + "• ", style: theme.Text})
		case markupEmphasisOpen:
			emphasis = true
			cur = append(cur, segment{text: "", style: theme.inlineStyle(emphasis, strong)})
		case markupEmphasisClose:
			emphasis = false
		case markupStrongOpen:
			strong = true
			cur = append(cur, segment{text: "", style: theme.inlineStyle(emphasis, strong)})
		case markupStrongClose:
			strong = false
		case markupText:
			style := theme.inlineStyle(emphasis, strong)
			if inCode {
				style = theme.Code
			}
			cur = append(cur, segment{text: ev.text, style: style})
		case markupBreak:
			flush()
		}
	}

	flush()
	return out
}
