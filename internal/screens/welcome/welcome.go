// Package welcome is the topic-entry screen shown at startup.
package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/potato4751/teaching-ai-validator/internal/router"
	"github.com/potato4751/teaching-ai-validator/internal/screen"
	"github.com/potato4751/teaching-ai-validator/internal/screens/teach"
	"github.com/potato4751/teaching-ai-validator/internal/session"
	"github.com/potato4751/teaching-ai-validator/internal/ui/components"
	"github.com/potato4751/teaching-ai-validator/internal/ui/layout"
	"github.com/potato4751/teaching-ai-validator/internal/ui/theme"
)

const logoArt = `  ╭─────────────╮
  │   ◉     ◉   │
  │      ?      │
  │   ╰─────╯   │
  ╰─────────────╯`

// startedMsg is sent when the service has produced the opening question.
type startedMsg struct {
	Result session.StartResult
	Err    error
}

// WelcomeScreen collects the topic and starts the session.
type WelcomeScreen struct {
	service  *session.Service
	input    components.TextInput
	starting bool
	errMsg   string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

func New(service *session.Service) *WelcomeScreen {
	return &WelcomeScreen{
		service: service,
		input:   components.NewTextInput("What do you want to teach me?", 120),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start teaching"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		w.starting = false
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		teachScreen := teach.New(w.service, msg.Result)
		return w, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: teachScreen}
		}

	case tea.KeyMsg:
		if w.starting {
			return w, nil
		}
		if msg.String() == "enter" {
			topic := strings.TrimSpace(w.input.Value())
			if topic == "" {
				w.errMsg = "Enter a topic first."
				return w, nil
			}
			w.errMsg = ""
			w.starting = true
			return w, w.start(topic)
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) start(topic string) tea.Cmd {
	svc := w.service
	return func() tea.Msg {
		result, err := svc.StartTeaching(context.Background(), topic)
		return startedMsg{Result: result, Err: err}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Render(logoArt),
		"",
		theme.Title.Render("Teachval"),
		theme.Subtitle.Render("Teach me something. I'll ask questions and check your facts."),
		"",
	)

	inputBox := theme.Card.Width(min(width-8, 64)).Render(w.input.View())
	sections = append(sections, inputBox)

	if w.starting {
		sections = append(sections, "", theme.Hint.Render("thinking of a first question..."))
	} else if w.errMsg != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
