package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// StatusComponent represents the status bar at the bottom of the screen
type StatusComponent struct {
	Model    string
	HasToken bool
	Width    int
	Style    lipgloss.Style

	// Waiting indicator
	waitingForResponse bool
	waitingSince       time.Time
}

// NewStatusComponent creates a new status component
func NewStatusComponent(width int) StatusComponent {
	return StatusComponent{
		Width: width,
		Style: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Padding(0),
	}
}

// SetModel sets the model name shown on the left
func (s *StatusComponent) SetModel(model string) {
	s.Model = model
}

// SetToken records whether an auth token is configured
func (s *StatusComponent) SetToken(hasToken bool) {
	s.HasToken = hasToken
}

// SetWidth updates the width of the status component
func (s *StatusComponent) SetWidth(width int) {
	s.Width = width
}

// StartWaiting marks the status component as waiting for a model response
func (s *StatusComponent) StartWaiting() {
	s.waitingForResponse = true
	s.waitingSince = time.Now()
}

// StopWaiting clears the waiting indicator
func (s *StatusComponent) StopWaiting() {
	s.waitingForResponse = false
}

// View renders the status line: model on the left, token state on the
// right, waiting indicator in between when a request is in flight.
func (s StatusComponent) View() string {
	leftSection := s.renderLeftSection()
	middleSection := s.renderMiddleSection()
	rightSection := s.renderRightSection()

	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)
	middleWidth := lipgloss.Width(middleSection)

	availableSpace := s.Width - 2
	totalContentWidth := leftWidth + middleWidth + rightWidth

	if totalContentWidth > availableSpace {
		if leftWidth+rightWidth > availableSpace {
			maxRightWidth := availableSpace - leftWidth
			if maxRightWidth > 0 {
				rightSection = truncate.StringWithTail(rightSection, uint(maxRightWidth), "…")
			} else {
				rightSection = ""
			}
		}
		if leftWidth > availableSpace && availableSpace > 0 {
			leftSection = truncate.StringWithTail(leftSection, uint(availableSpace), "…")
		}
		middleSection = ""
	}

	leftWidth = lipgloss.Width(leftSection)
	rightWidth = lipgloss.Width(rightSection)
	middleWidth = lipgloss.Width(middleSection)

	var statusLine string
	if middleSection != "" {
		totalContentWidth = leftWidth + middleWidth + rightWidth
		if totalContentWidth < availableSpace {
			leftSpacing := (availableSpace - totalContentWidth) / 2
			rightSpacing := availableSpace - totalContentWidth - leftSpacing
			statusLine = leftSection + strings.Repeat(" ", leftSpacing) + middleSection + strings.Repeat(" ", rightSpacing) + rightSection
		} else {
			statusLine = leftSection + " " + middleSection + " " + rightSection
		}
	} else {
		spacing := availableSpace - leftWidth - rightWidth
		if spacing < 0 {
			spacing = 0
		}
		statusLine = leftSection + strings.Repeat(" ", spacing) + rightSection
	}

	return s.Style.Render(statusLine)
}

func (s StatusComponent) renderLeftSection() string {
	modelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return "Model: " + modelStyle.Render(s.Model)
}

func (s StatusComponent) renderMiddleSection() string {
	if !s.waitingForResponse || s.waitingSince.IsZero() {
		return ""
	}
	waitSeconds := int(time.Since(s.waitingSince).Seconds())
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	return statusStyle.Render(fmt.Sprintf("⏳ %ds", waitSeconds))
}

func (s StatusComponent) renderRightSection() string {
	if s.HasToken {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("● token set")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("○ no token (Alt+C)")
}
