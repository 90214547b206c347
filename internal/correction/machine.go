// Package correction owns the error-correction sub-protocol: detecting
// a factual error in a teacher explanation, issuing the correction, and
// running the verification question loop until understanding is
// confirmed.
//
// States: Normal → (error detected) → Verifying → (understanding
// confirmed) → Normal. The Verifying state lives in the conversation
// memory's CorrectionState; this package drives the transitions.
package correction

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/potato4751/teaching-ai-validator/internal/conversation"
	"github.com/potato4751/teaching-ai-validator/internal/factcheck"
)

// Fixed quality scores assigned by the correction protocol.
const (
	// ScoreError is recorded for the exchange that triggered a correction.
	ScoreError = 0.2
	// ScoreVerifying is recorded while the teacher is still being verified.
	ScoreVerifying = 0.4
	// ScoreVerified is recorded on the exchange that resolves the correction.
	ScoreVerified = 0.8
)

// requiredCorrectAnswers is the number of understanding replies that
// resolve a correction when no single reply is confident enough.
const requiredCorrectAnswers = 2

// confidenceExit resolves a correction from a single high-confidence
// understanding reply.
const confidenceExit = 0.8

// FollowUpFunc produces the normal-mode follow-up question appended to
// the message that resolves a correction.
type FollowUpFunc func(ctx context.Context) string

// Machine drives the correction protocol. Randomness is injected so
// tests can pin a seed and assert exact template output.
type Machine struct {
	checker *factcheck.Checker
	rng     *rand.Rand
}

// NewMachine creates a Machine.
func NewMachine(checker *factcheck.Checker, rng *rand.Rand) *Machine {
	return &Machine{checker: checker, rng: rng}
}

// Detect runs the fact-check judge against one teacher explanation.
// Fail-open semantics live in the checker: short inputs and judge
// failures both come back as "no errors".
func (m *Machine) Detect(ctx context.Context, topicName, explanation string) factcheck.Result {
	return m.checker.Check(ctx, topicName, explanation)
}

// Enter switches the memory into correction mode for the detected error
// and returns the correction message. The exchange that triggered it is
// scored ScoreError by the caller.
func (m *Machine) Enter(mem *conversation.Memory, res factcheck.Result, sessionTopic string) string {
	concept := res.IncorrectConcept
	if concept == "" {
		concept = "that concept"
	}
	correct := res.CorrectExplanation
	if correct == "" {
		correct = "the correct explanation"
	}

	mem.EnterCorrection(concept)

	tmpl := correctionTemplates[m.rng.IntN(len(correctionTemplates))]
	return tmpl(concept, correct, sessionTopic)
}

// Verify handles one teacher reply while in correction mode. It returns
// the AI response, the fixed quality score for this exchange, and
// whether the correction was resolved.
//
// The exit condition: the reply shows understanding AND either this is
// the second understanding reply or the judge's confidence is at least
// 0.8. Replies that never show understanding keep the loop open
// indefinitely.
func (m *Machine) Verify(ctx context.Context, mem *conversation.Memory, sessionTopic, reply string, followUp FollowUpFunc) (string, float64, bool) {
	concept := mem.Correction().Topic

	assessment := m.checker.AssessUnderstanding(ctx, concept, reply)
	mem.RecordVerification(assessment.ShowsUnderstanding)

	if assessment.ShowsUnderstanding {
		if mem.Correction().AnswersCorrect >= requiredCorrectAnswers ||
			assessment.Confidence >= confidenceExit {
			mem.ExitCorrection()
			return m.resolvedMessage(ctx, assessment, sessionTopic, followUp), ScoreVerified, true
		}
	}

	question := m.verificationQuestion(concept, sessionTopic, mem.Correction().QuestionsAsked)
	return question, ScoreVerifying, false
}

// resolvedMessage builds the encouragement-plus-new-question message
// that closes a correction.
func (m *Machine) resolvedMessage(ctx context.Context, a factcheck.Assessment, sessionTopic string, followUp FollowUpFunc) string {
	var b strings.Builder
	b.WriteString("Perfect! You've got it now!")
	if a.Encouragement != "" {
		b.WriteString(" ")
		b.WriteString(a.Encouragement)
	}
	b.WriteString(" Let me continue with a new question about ")
	b.WriteString(sessionTopic)
	b.WriteString(".")

	if followUp != nil {
		if q := followUp(ctx); q != "" {
			b.WriteString(" ")
			b.WriteString(q)
		}
	}

	return b.String()
}

// verificationQuestion picks a question template. The first question
// asks how the concept works; later questions probe from a different
// angle.
func (m *Machine) verificationQuestion(concept, sessionTopic string, questionNumber int) string {
	if questionNumber <= 1 {
		tmpl := firstVerificationTemplates[m.rng.IntN(len(firstVerificationTemplates))]
		return tmpl(concept, sessionTopic)
	}
	tmpl := laterVerificationTemplates[m.rng.IntN(len(laterVerificationTemplates))]
	return tmpl(concept, sessionTopic)
}
