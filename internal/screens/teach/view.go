package teach

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/potato4751/teaching-ai-validator/internal/ui/theme"
)

func (t *TeachScreen) View(width, height int) string {
	if t.confirm {
		return renderConfirm(width, height)
	}

	var b strings.Builder

	bubbleWidth := width - 12
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	for _, e := range t.entries {
		label := theme.LearnerLabel.Render("Learner")
		if e.fromTeacher {
			label = theme.TeacherLabel.Render("You")
		}

		line := label + "  " + theme.Body.Render(e.text)
		if e.fromTeacher && e.scored {
			line += "  " + scoreStyle(e.score).Render(fmt.Sprintf("[%.2f]", e.score))
		}

		b.WriteString(lipgloss.NewStyle().Width(bubbleWidth).Render(line))
		b.WriteString("\n\n")
	}

	if t.progress.CorrectionMode {
		b.WriteString(theme.Incorrect.Render("⚠ correcting a misconception"))
		b.WriteString("\n\n")
	}
	if t.thinking {
		b.WriteString(theme.Hint.Render("thinking..."))
		b.WriteString("\n\n")
	}
	if t.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(t.errMsg))
		b.WriteString("\n\n")
	}

	transcript := b.String()

	inputBox := theme.Card.Width(width - 6).Render(t.input.View())
	inputHeight := lipgloss.Height(inputBox)

	// Keep the tail of the transcript visible above the input.
	available := height - inputHeight - 1
	if available < 0 {
		available = 0
	}
	lines := strings.Split(strings.TrimRight(transcript, "\n"), "\n")
	if len(lines) > available {
		lines = lines[len(lines)-available:]
	}

	body := strings.Join(lines, "\n")
	gap := available - len(lines)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(body) + "\n" + inputBox
}

func renderConfirm(width, height int) string {
	card := theme.Card.Render("End this teaching session?\n\n" +
		theme.Hint.Render("Y to see your summary, N to keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.7:
		return theme.Correct
	case score <= 0.3:
		return theme.Incorrect
	default:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	}
}
