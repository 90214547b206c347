// Package teach is the main dialogue screen: the learner asks, the
// teacher explains, scores and corrections come back inline.
package teach

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/potato4751/teaching-ai-validator/internal/router"
	"github.com/potato4751/teaching-ai-validator/internal/screen"
	"github.com/potato4751/teaching-ai-validator/internal/screens/summary"
	"github.com/potato4751/teaching-ai-validator/internal/session"
	"github.com/potato4751/teaching-ai-validator/internal/ui/components"
	"github.com/potato4751/teaching-ai-validator/internal/ui/layout"
)

// entry is one line of the on-screen dialogue.
type entry struct {
	fromTeacher bool
	text        string
	score       float64 // teacher entries only
	scored      bool
}

// TeachScreen implements screen.Screen for the active dialogue.
type TeachScreen struct {
	service  *session.Service
	topic    string
	progress session.Progress

	entries  []entry
	input    components.TextInput
	thinking bool
	confirm  bool
	errMsg   string
}

var _ screen.Screen = (*TeachScreen)(nil)
var _ screen.KeyHintProvider = (*TeachScreen)(nil)

// New creates the dialogue screen seeded with the opening question.
func New(service *session.Service, start session.StartResult) *TeachScreen {
	return &TeachScreen{
		service: service,
		topic:   start.Topic,
		entries: []entry{
			{fromTeacher: false, text: start.OpeningQuestion},
		},
		input: components.NewTextInput("Explain it to me...", 500),
	}
}

func (t *TeachScreen) Init() tea.Cmd {
	return t.input.Init()
}

func (t *TeachScreen) Title() string {
	return "Teaching: " + t.topic
}

// Progress exposes the latest snapshot for the header.
func (t *TeachScreen) Progress() session.Progress {
	return t.progress
}

func (t *TeachScreen) KeyHints() []layout.KeyHint {
	if t.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep teaching"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "End session"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (t *TeachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepDoneMsg:
		return t.handleStepDone(msg)

	case endSessionMsg:
		return t, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: summary.New(t.topic, t.service.Progress()),
			}
		}

	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	if !t.thinking && !t.confirm {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	return t, nil
}

func (t *TeachScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if t.confirm {
		switch key {
		case "y", "Y":
			t.confirm = false
			return t, func() tea.Msg { return endSessionMsg{} }
		case "n", "N", "esc":
			t.confirm = false
		}
		return t, nil
	}

	if t.thinking {
		return t, nil
	}

	switch key {
	case "esc":
		t.confirm = true
		return t, nil
	case "enter":
		return t.submit()
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TeachScreen) submit() (screen.Screen, tea.Cmd) {
	explanation := strings.TrimSpace(t.input.Value())
	if explanation == "" {
		return t, nil
	}

	t.entries = append(t.entries, entry{fromTeacher: true, text: explanation})
	t.input.Reset()
	t.thinking = true
	t.errMsg = ""

	svc := t.service
	return t, func() tea.Msg {
		result, err := svc.TeachStep(context.Background(), explanation)
		return stepDoneMsg{Explanation: explanation, Result: result, Err: err}
	}
}

func (t *TeachScreen) handleStepDone(msg stepDoneMsg) (screen.Screen, tea.Cmd) {
	t.thinking = false

	if msg.Err != nil {
		t.errMsg = msg.Err.Error()
		return t, nil
	}

	// Attach the score to the explanation that earned it.
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].fromTeacher && !t.entries[i].scored {
			t.entries[i].score = msg.Result.QualityScore
			t.entries[i].scored = true
			break
		}
	}

	t.entries = append(t.entries, entry{fromTeacher: false, text: msg.Result.AIResponse})
	t.progress = msg.Result.Progress

	return t, t.input.Init()
}
