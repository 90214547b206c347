package correction

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/potato4751/teaching-ai-validator/internal/conversation"
	"github.com/potato4751/teaching-ai-validator/internal/factcheck"
	"github.com/potato4751/teaching-ai-validator/internal/llm"
)

func newMachine(mock *llm.MockProvider) *Machine {
	checker := factcheck.New(mock, factcheck.DefaultConfig())
	rng := rand.New(rand.NewPCG(1, 2))
	return NewMachine(checker, rng)
}

func understandingJSON(understood bool, confidence float64) llm.MockResponse {
	return llm.MockResponse{
		Content: json.RawMessage(fmt.Sprintf(
			`{"shows_understanding":%t,"confidence":%g,"encouragement":"Keep going!"}`,
			understood, confidence)),
	}
}

func TestEnterActivatesCorrection(t *testing.T) {
	m := newMachine(llm.NewMockProvider())
	mem := conversation.New()

	msg := m.Enter(mem, factcheck.Result{
		HasErrors:          true,
		IncorrectConcept:   "plants eating sunlight",
		CorrectExplanation: "Plants convert sunlight into chemical energy",
	}, "photosynthesis")

	if !mem.InCorrection() {
		t.Fatal("expected correction mode active")
	}
	if mem.Correction().Topic != "plants eating sunlight" {
		t.Errorf("correction topic = %q", mem.Correction().Topic)
	}
	if !strings.Contains(msg, "plants eating sunlight") {
		t.Errorf("correction message must name the concept: %q", msg)
	}
	if !strings.Contains(msg, "Plants convert sunlight into chemical energy") {
		t.Errorf("correction message must carry the correct explanation: %q", msg)
	}
	if !strings.Contains(msg, "photosynthesis") {
		t.Errorf("correction message must reference the session topic: %q", msg)
	}
}

func TestEnterFallsBackToGenericPhrasing(t *testing.T) {
	m := newMachine(llm.NewMockProvider())
	mem := conversation.New()

	msg := m.Enter(mem, factcheck.Result{HasErrors: true}, "photosynthesis")
	if !strings.Contains(msg, "that concept") {
		t.Errorf("expected generic concept phrasing, got %q", msg)
	}
	if mem.Correction().Topic != "that concept" {
		t.Errorf("correction topic = %q", mem.Correction().Topic)
	}
}

func TestVerifyExitsOnSecondUnderstanding(t *testing.T) {
	mock := llm.NewMockProvider(
		understandingJSON(true, 0.5),
		understandingJSON(true, 0.5),
	)
	m := newMachine(mock)
	mem := conversation.New()
	mem.EnterCorrection("plants eating sunlight")

	reply := "Plants convert light energy into chemical energy in their leaves"

	resp, score, resolved := m.Verify(context.Background(), mem, "photosynthesis", reply, nil)
	if resolved {
		t.Fatal("first medium-confidence understanding must not resolve")
	}
	if score != ScoreVerifying {
		t.Errorf("score = %v, want %v", score, ScoreVerifying)
	}
	if resp == "" {
		t.Error("expected a verification question")
	}

	resp, score, resolved = m.Verify(context.Background(), mem, "photosynthesis", reply, nil)
	if !resolved {
		t.Fatal("second understanding reply must resolve the correction")
	}
	if score != ScoreVerified {
		t.Errorf("score = %v, want %v", score, ScoreVerified)
	}
	if !strings.HasPrefix(resp, "Perfect! You've got it now!") {
		t.Errorf("resolution message = %q", resp)
	}
	if mem.InCorrection() {
		t.Error("correction mode must be inactive after resolution")
	}
}

func TestVerifyExitsOnHighConfidence(t *testing.T) {
	mock := llm.NewMockProvider(understandingJSON(true, 0.9))
	m := newMachine(mock)
	mem := conversation.New()
	mem.EnterCorrection("plants eating sunlight")

	followUpCalled := false
	followUp := func(ctx context.Context) string {
		followUpCalled = true
		return "Why is sunlight necessary for making food?"
	}

	resp, score, resolved := m.Verify(context.Background(), mem, "photosynthesis",
		"Plants convert light energy into chemical energy", followUp)
	if !resolved {
		t.Fatal("single high-confidence understanding must resolve")
	}
	if score != ScoreVerified {
		t.Errorf("score = %v, want %v", score, ScoreVerified)
	}
	if !followUpCalled {
		t.Error("resolution must request a follow-up question")
	}
	if !strings.Contains(resp, "Keep going!") {
		t.Errorf("resolution must include the judge's encouragement: %q", resp)
	}
	if !strings.Contains(resp, "Why is sunlight necessary for making food?") {
		t.Errorf("resolution must append the follow-up: %q", resp)
	}
}

func TestVerifyNeverExitsWithoutUnderstanding(t *testing.T) {
	mock := llm.NewMockProvider(
		understandingJSON(false, 0.9),
		understandingJSON(false, 0.9),
		understandingJSON(false, 0.9),
	)
	m := newMachine(mock)
	mem := conversation.New()
	mem.EnterCorrection("plants eating sunlight")

	for i := 0; i < 3; i++ {
		_, score, resolved := m.Verify(context.Background(), mem, "photosynthesis",
			"I am still not really sure about this", nil)
		if resolved {
			t.Fatalf("round %d: confidence alone must never resolve a correction", i+1)
		}
		if score != ScoreVerifying {
			t.Errorf("round %d: score = %v, want %v", i+1, score, ScoreVerifying)
		}
	}

	if got := mem.Correction().QuestionsAsked; got != 3 {
		t.Errorf("QuestionsAsked = %d, want 3", got)
	}
	if got := mem.Correction().AnswersCorrect; got != 0 {
		t.Errorf("AnswersCorrect = %d, want 0", got)
	}
}

func TestVerificationQuestionsNameTheConcept(t *testing.T) {
	mock := llm.NewMockProvider(
		understandingJSON(false, 0.5),
		understandingJSON(false, 0.5),
	)
	m := newMachine(mock)
	mem := conversation.New()
	mem.EnterCorrection("chlorophyll absorption")

	first, _, _ := m.Verify(context.Background(), mem, "photosynthesis",
		"hmm let me think about that again", nil)
	later, _, _ := m.Verify(context.Background(), mem, "photosynthesis",
		"hmm let me think about that again", nil)

	for _, q := range []string{first, later} {
		if !strings.Contains(q, "chlorophyll absorption") {
			t.Errorf("verification question must name the concept: %q", q)
		}
		if !strings.Contains(q, "photosynthesis") {
			t.Errorf("verification question must name the topic: %q", q)
		}
	}
}
