package teach

import (
	"github.com/potato4751/teaching-ai-validator/internal/session"
)

// stepDoneMsg is sent when the learner has finished responding to an
// explanation.
type stepDoneMsg struct {
	Explanation string
	Result      session.StepResult
	Err         error
}

// endSessionMsg is sent to trigger the session summary.
type endSessionMsg struct{}
