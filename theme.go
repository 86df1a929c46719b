package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors and styles for the UI.
type Theme struct {
	Text       lipgloss.Style
	Header     lipgloss.Style // per-message "[hh:mm:ss] Role:" header
	Heading    lipgloss.Style // markdown headings
	Code       lipgloss.Style
	Emphasis   lipgloss.Style
	Strong     lipgloss.Style
	EmphStrong lipgloss.Style

	FocusedBorder lipgloss.Style
	BlurredBorder lipgloss.Style
	PopupBorder   lipgloss.Style
	PopupTitle    lipgloss.Style
	PaneTitle     lipgloss.Style
	Selected      lipgloss.Style
	Status        lipgloss.Style
}

// NewTheme creates and returns the default theme.
func NewTheme() *Theme {
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	return &Theme{
		Text:       lipgloss.NewStyle(),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Code:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Background(lipgloss.Color("0")),
		Emphasis:   lipgloss.NewStyle().Italic(true),
		Strong:     lipgloss.NewStyle().Bold(true),
		EmphStrong: lipgloss.NewStyle().Italic(true).Bold(true),

		FocusedBorder: border.BorderForeground(lipgloss.Color("2")),
		BlurredBorder: border.BorderForeground(lipgloss.Color("8")),
		PopupBorder:   border.BorderForeground(lipgloss.Color("62")),
		PopupTitle: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1),
		PaneTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// inlineStyle resolves the ambient emphasis/strong flags into a style.
func (t *Theme) inlineStyle(emphasis, strong bool) lipgloss.Style {
	switch {
	case emphasis && strong:
		return t.EmphStrong
	case emphasis:
		return t.Emphasis
	case strong:
		return t.Strong
	default:
		return t.Text
	}
}
