package conversation

import (
	"testing"

	"github.com/potato4751/teaching-ai-validator/internal/topic"
)

func TestRecordAppendsPairs(t *testing.T) {
	m := New()
	m.Record("plants make food from light", "How does that work?")
	m.Record("they use chlorophyll", "What is chlorophyll made of?")

	exchanges := m.Exchanges()
	if len(exchanges) != 4 {
		t.Fatalf("expected 4 exchanges, got %d", len(exchanges))
	}
	if exchanges[0].Speaker != SpeakerTeacher || exchanges[1].Speaker != SpeakerAI {
		t.Error("expected teacher/AI ordering within a pair")
	}
	if m.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.Depth())
	}
	if m.LastAIQuestion() != "What is chlorophyll made of?" {
		t.Errorf("LastAIQuestion = %q", m.LastAIQuestion())
	}
}

func TestIsQuestion(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"How does it work?", true},
		{"what happens next", true},
		{"Tell me more.", false},
		{"That makes sense!", false},
		{"is it true? yes", true},
	}
	for _, tc := range cases {
		if got := IsQuestion(tc.text); got != tc.want {
			t.Errorf("IsQuestion(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestHasAskedSimilarTokenBoundary(t *testing.T) {
	m := New()
	m.Record("some explanation", "What is the main purpose of photosynthesis?")

	// Shares 5 tokens (what, is, the, main, purpose) with the stored
	// fingerprint.
	if !m.HasAskedSimilar("What is the main purpose here?") {
		t.Error("expected duplicate at >= 4 shared tokens")
	}

	// Shares only 3 tokens (what, is, the).
	if m.HasAskedSimilar("What is the chloroplast doing?") {
		t.Error("expected no duplicate at 3 shared tokens")
	}
}

func TestHasAskedSimilarUsesPrefixOnly(t *testing.T) {
	m := New()
	long := "Could you walk me through every intermediate chemical stage, and tell me what is the main purpose of it?"
	m.Record("x", long)

	// The distinguishing tail falls outside the 60-char fingerprint, so a
	// candidate matching only the tail does not collide.
	if m.HasAskedSimilar("what is the main purpose of it") {
		t.Error("tokens beyond the fingerprint prefix should not match")
	}
}

func TestNonQuestionNotFingerprinted(t *testing.T) {
	m := New()
	m.Record("teaching text here", "That makes a lot of sense, thanks for explaining it all.")
	if m.HasAskedSimilar("that makes a lot of sense, thanks") {
		t.Error("statements must not enter the asked set")
	}
}

func TestConceptExtraction(t *testing.T) {
	m := New()
	// > 5 words, first three words > 4 chars: plants, convert, sunlight.
	m.Record("the plants convert sunlight into chemical energy", "ok")
	if got := m.ConceptsCovered(); got != 3 {
		t.Errorf("ConceptsCovered = %d, want 3", got)
	}

	// Short inputs contribute nothing.
	m.Record("they do", "ok")
	if got := m.ConceptsCovered(); got != 3 {
		t.Errorf("ConceptsCovered after short input = %d, want 3", got)
	}
}

func TestRecentWindow(t *testing.T) {
	m := New()
	m.Record("one", "a?")
	m.Record("two", "b?")
	m.Record("three", "c?")

	window := m.RecentWindow(4)
	if len(window) != 4 {
		t.Fatalf("window length = %d, want 4", len(window))
	}
	if window[0].Text != "two" || window[3].Text != "c?" {
		t.Errorf("unexpected window contents: %+v", window)
	}

	all := m.RecentWindow(100)
	if len(all) != 6 {
		t.Errorf("oversized window length = %d, want 6", len(all))
	}
}

func TestCorrectionLifecycle(t *testing.T) {
	m := New()
	if m.InCorrection() {
		t.Fatal("fresh memory must not be in correction mode")
	}

	m.EnterCorrection("plants eating sunlight")
	if !m.InCorrection() {
		t.Fatal("expected correction mode active")
	}
	if got := m.Correction().Topic; got != "plants eating sunlight" {
		t.Errorf("correction topic = %q", got)
	}

	m.RecordVerification(false)
	m.RecordVerification(true)
	c := m.Correction()
	if c.QuestionsAsked != 2 || c.AnswersCorrect != 1 {
		t.Errorf("counters = %d/%d, want 2/1", c.QuestionsAsked, c.AnswersCorrect)
	}

	m.ExitCorrection()
	if m.InCorrection() {
		t.Error("expected correction mode inactive after exit")
	}
	c = m.Correction()
	if c.QuestionsAsked != 0 || c.AnswersCorrect != 0 {
		t.Error("exit must zero the verification counters")
	}
	if m.CorrectionsMade() != 1 {
		t.Errorf("CorrectionsMade = %d, want 1 (history survives exit)", m.CorrectionsMade())
	}

	m.EnterCorrection("another error")
	if m.CorrectionsMade() != 2 {
		t.Errorf("CorrectionsMade = %d, want 2", m.CorrectionsMade())
	}
}

func TestReset(t *testing.T) {
	m := New()
	m.SetAnalysis(topic.Classify("photosynthesis"))
	m.Record("plants convert sunlight into chemical energy always", "How so?")
	m.EnterCorrection("x")

	m.Reset()

	if m.Depth() != 0 || len(m.Exchanges()) != 0 {
		t.Error("reset must clear exchanges")
	}
	if m.InCorrection() || m.CorrectionsMade() != 0 {
		t.Error("reset must clear correction state and history")
	}
	if _, ok := m.Analysis(); ok {
		t.Error("reset must clear the topic analysis")
	}
	if m.HasAskedSimilar("how so? how so? how so? how so?") {
		t.Error("reset must clear asked fingerprints")
	}
}
