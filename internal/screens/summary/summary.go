// Package summary displays the end-of-session progress report.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/potato4751/teaching-ai-validator/internal/screen"
	"github.com/potato4751/teaching-ai-validator/internal/session"
	"github.com/potato4751/teaching-ai-validator/internal/ui/layout"
	"github.com/potato4751/teaching-ai-validator/internal/ui/theme"
)

// SummaryScreen displays the session progress summary.
type SummaryScreen struct {
	topic    string
	progress session.Progress
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(topic string, progress session.Progress) *SummaryScreen {
	return &SummaryScreen{topic: topic, progress: progress}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/Esc", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	p := s.progress
	var b strings.Builder

	center := func(style lipgloss.Style, text string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text)))
		b.WriteString("\n")
	}

	center(theme.Title, "Session complete!")
	b.WriteString("\n")
	center(theme.Subtitle, fmt.Sprintf("Topic: %s", s.topic))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("─", min(width-8, 56)))
	center(lipgloss.NewStyle(), divider)
	b.WriteString("\n")

	rows := []struct {
		label string
		value string
	}{
		{"Exchanges", fmt.Sprintf("%d", p.Exchanges)},
		{"Average quality", fmt.Sprintf("%.2f", p.AverageQuality)},
		{"Latest score", fmt.Sprintf("%.2f", p.LatestScore)},
		{"Trend", string(p.Trend)},
		{"Difficulty reached", fmt.Sprintf("%d / 3", p.Difficulty)},
		{"Corrections", fmt.Sprintf("%d", p.CorrectionsMade)},
		{"Duration", fmt.Sprintf("%.1f min", p.DurationMinutes)},
	}

	for _, row := range rows {
		line := fmt.Sprintf("%-20s %s",
			row.label,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(row.value))
		center(lipgloss.NewStyle().Foreground(theme.TextDim), line)
	}

	if p.CorrectionMode {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.Accent),
			"A correction was still in progress when you stopped.")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
