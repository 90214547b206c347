// Package conversation holds the per-session dialogue memory: the
// exchange log, the asked-question fingerprints used to avoid visible
// repetition, concept coverage, and the correction-mode state.
package conversation

import (
	"strings"

	"github.com/potato4751/teaching-ai-validator/internal/topic"
)

// fingerprintLen is the normalized question prefix length used for
// near-duplicate detection.
const fingerprintLen = 60

// sharedTokenThreshold is the number of tokens two fingerprints must
// share to count as duplicates.
const sharedTokenThreshold = 4

// Speaker identifies who produced an exchange.
type Speaker string

const (
	SpeakerTeacher Speaker = "teacher"
	SpeakerAI      Speaker = "ai"
)

// Exchange is one utterance in the dialogue. Appended, never mutated.
type Exchange struct {
	Speaker Speaker
	Text    string
}

// CorrectionState tracks the error-correction sub-protocol.
//
// Invariant: Active == false implies QuestionsAsked == 0 and
// AnswersCorrect == 0. History survives ExitCorrection so the session
// can report how many corrections were made; only Reset clears it.
type CorrectionState struct {
	Active         bool
	Topic          string
	QuestionsAsked int
	AnswersCorrect int
	History        []string
}

// Memory is the append-only conversation state for one session.
// Not safe for concurrent use; the session service serializes turns.
type Memory struct {
	exchanges         []Exchange
	askedFingerprints map[string]struct{}
	lastAIQuestion    string
	conceptsCovered   map[string]struct{}
	depth             int
	analysis          topic.Analysis
	analysisSet       bool
	correction        CorrectionState
}

// New creates an empty Memory.
func New() *Memory {
	return &Memory{
		askedFingerprints: make(map[string]struct{}),
		conceptsCovered:   make(map[string]struct{}),
	}
}

// SetAnalysis records the topic classification, set once per session.
func (m *Memory) SetAnalysis(a topic.Analysis) {
	m.analysis = a
	m.analysisSet = true
}

// Analysis returns the topic classification and whether it has been set.
func (m *Memory) Analysis() (topic.Analysis, bool) {
	return m.analysis, m.analysisSet
}

// Record appends one completed teacher/AI pair. Keeping the two halves
// in a single call is what enforces the pairing invariant: a teacher
// turn is always immediately followed by exactly one AI turn.
func (m *Memory) Record(teacherText, aiText string) {
	m.exchanges = append(m.exchanges,
		Exchange{Speaker: SpeakerTeacher, Text: teacherText},
		Exchange{Speaker: SpeakerAI, Text: aiText},
	)

	if IsQuestion(aiText) {
		m.askedFingerprints[fingerprint(aiText)] = struct{}{}
		m.lastAIQuestion = aiText
	}

	// Pull salient words out of substantial teacher inputs.
	words := strings.Fields(teacherText)
	if len(words) > 5 {
		taken := 0
		for _, w := range words {
			if len(w) > 4 {
				m.conceptsCovered[strings.ToLower(w)] = struct{}{}
				taken++
				if taken == 3 {
					break
				}
			}
		}
	}

	m.depth++
}

// IsQuestion reports whether text reads as a question: it contains a
// question mark or starts with a wh-word.
func IsQuestion(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	lower := strings.ToLower(text)
	for _, w := range []string{"what", "how", "why", "when", "where", "which", "who"} {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}

// fingerprint normalizes a question to its lower-cased 60-character
// prefix.
func fingerprint(text string) string {
	lower := strings.ToLower(text)
	if len(lower) > fingerprintLen {
		lower = lower[:fingerprintLen]
	}
	return lower
}

// HasAskedSimilar reports whether a candidate question is a near
// duplicate of one already asked: its fingerprint shares at least four
// whitespace tokens with a stored fingerprint. Order-insensitive and
// approximate; false positives on generic questions are accepted as the
// cost of never visibly repeating a question.
func (m *Memory) HasAskedSimilar(candidate string) bool {
	sig := tokenSet(fingerprint(candidate))
	for asked := range m.askedFingerprints {
		shared := 0
		for tok := range tokenSet(asked) {
			if _, ok := sig[tok]; ok {
				shared++
				if shared >= sharedTokenThreshold {
					return true
				}
			}
		}
	}
	return false
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// RecentWindow returns the last n exchanges in original order, fewer if
// the history is shorter.
func (m *Memory) RecentWindow(n int) []Exchange {
	if len(m.exchanges) <= n {
		return append([]Exchange(nil), m.exchanges...)
	}
	return append([]Exchange(nil), m.exchanges[len(m.exchanges)-n:]...)
}

// Exchanges returns a copy of the full exchange log.
func (m *Memory) Exchanges() []Exchange {
	return append([]Exchange(nil), m.exchanges...)
}

// LastAIQuestion returns the most recent AI-authored question.
func (m *Memory) LastAIQuestion() string {
	return m.lastAIQuestion
}

// Depth returns the number of completed teacher/AI pairs.
func (m *Memory) Depth() int {
	return m.depth
}

// ConceptsCovered returns the number of distinct concepts seen so far.
func (m *Memory) ConceptsCovered() int {
	return len(m.conceptsCovered)
}

// EnterCorrection switches into correction mode for the given concept
// and zeroes the verification counters.
func (m *Memory) EnterCorrection(concept string) {
	m.correction.Active = true
	m.correction.Topic = concept
	m.correction.QuestionsAsked = 0
	m.correction.AnswersCorrect = 0
	m.correction.History = append(m.correction.History, concept)
}

// ExitCorrection leaves correction mode, preserving no counters.
func (m *Memory) ExitCorrection() {
	m.correction.Active = false
	m.correction.Topic = ""
	m.correction.QuestionsAsked = 0
	m.correction.AnswersCorrect = 0
}

// InCorrection reports whether correction mode is active.
func (m *Memory) InCorrection() bool {
	return m.correction.Active
}

// Correction returns a copy of the correction state.
func (m *Memory) Correction() CorrectionState {
	c := m.correction
	c.History = append([]string(nil), m.correction.History...)
	return c
}

// RecordVerification counts one verification round: the question asked,
// and whether the teacher's reply showed understanding.
func (m *Memory) RecordVerification(understood bool) {
	m.correction.QuestionsAsked++
	if understood {
		m.correction.AnswersCorrect++
	}
}

// CorrectionsMade returns how many corrections have been entered during
// this session, including ones already resolved.
func (m *Memory) CorrectionsMade() int {
	return len(m.correction.History)
}

// Reset clears all state back to an empty session.
func (m *Memory) Reset() {
	m.exchanges = nil
	m.askedFingerprints = make(map[string]struct{})
	m.lastAIQuestion = ""
	m.conceptsCovered = make(map[string]struct{})
	m.depth = 0
	m.analysis = topic.Analysis{}
	m.analysisSet = false
	m.correction = CorrectionState{}
}
