package respond

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/potato4751/teaching-ai-validator/internal/conversation"
	"github.com/potato4751/teaching-ai-validator/internal/llm"
	"github.com/potato4751/teaching-ai-validator/internal/topic"
)

func newOrchestrator(mock *llm.MockProvider) *Orchestrator {
	rng := rand.New(rand.NewPCG(7, 7))
	return New(mock, DefaultConfig(), rng)
}

func textResponse(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func TestGenerateIntroduction(t *testing.T) {
	mock := llm.NewMockProvider(textResponse("Can you explain what photosynthesis actually does?"))
	o := newOrchestrator(mock)

	got := o.Generate(context.Background(), Input{
		Topic:          "photosynthesis",
		Analysis:       topic.Classify("photosynthesis"),
		Memory:         conversation.New(),
		Difficulty:     1,
		TeacherInput:   "I want to learn about photosynthesis",
		IsIntroduction: true,
	})

	if got != "Can you explain what photosynthesis actually does?" {
		t.Errorf("got %q", got)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount())
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("question generation must not request structured output")
	}
	if req.MaxTokens != 120 || req.Temperature != 0.9 || req.TopP != 0.95 {
		t.Errorf("generation tuning = %d/%v/%v", req.MaxTokens, req.Temperature, req.TopP)
	}
}

func TestGenerateFallbackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	o := newOrchestrator(mock)

	got := o.Generate(context.Background(), Input{
		Topic:        "photosynthesis",
		Memory:       conversation.New(),
		Difficulty:   2,
		TeacherInput: "Plants use sunlight to build glucose molecules inside their leaves.",
	})

	if !strings.Contains(got, "photosynthesis") {
		t.Errorf("fallback must mention the topic: %q", got)
	}
	if !isKnownFollowUp(got, "photosynthesis", 2) {
		t.Errorf("fallback not from the difficulty-2 set: %q", got)
	}
}

func TestGenerateFallbackOnEmptyResponse(t *testing.T) {
	mock := llm.NewMockProvider(textResponse("   "))
	o := newOrchestrator(mock)

	got := o.Generate(context.Background(), Input{
		Topic:        "photosynthesis",
		Memory:       conversation.New(),
		Difficulty:   1,
		TeacherInput: "Plants use sunlight to build glucose molecules inside their leaves.",
	})

	if !isKnownFollowUp(got, "photosynthesis", 1) {
		t.Errorf("expected a difficulty-1 fallback, got %q", got)
	}
}

func TestGenerateClarificationMode(t *testing.T) {
	mock := llm.NewMockProvider(textResponse("I meant the chemical side of it!"))
	o := newOrchestrator(mock)

	mem := conversation.New()
	mem.Record("plants turn light into sugar somehow always", "What kind of sugar do they make?")

	got := o.Generate(context.Background(), Input{
		Topic:        "photosynthesis",
		Memory:       mem,
		Difficulty:   1,
		TeacherInput: "What do you mean by that?",
	})

	if got != "I meant the chemical side of it!" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateDuplicateQuestionFallsBack(t *testing.T) {
	// The generated question shares five fingerprint tokens with one
	// already asked.
	mock := llm.NewMockProvider(textResponse("What is the main purpose here?"))
	o := newOrchestrator(mock)

	mem := conversation.New()
	mem.Record("an earlier explanation about plants", "What is the main purpose of photosynthesis?")

	got := o.Generate(context.Background(), Input{
		Topic:        "photosynthesis",
		Memory:       mem,
		Difficulty:   1,
		TeacherInput: "Plants capture light with chlorophyll in their leaf cells.",
	})

	if got == "What is the main purpose here?" {
		t.Error("near-duplicate question must be replaced by a fallback")
	}
	if !isKnownFollowUp(got, "photosynthesis", 1) {
		t.Errorf("expected a difficulty-1 fallback, got %q", got)
	}
}

func TestGenerateNoDedupOnClarification(t *testing.T) {
	mock := llm.NewMockProvider(textResponse("What is the main purpose here?"))
	o := newOrchestrator(mock)

	mem := conversation.New()
	mem.Record("x y z", "What is the main purpose of photosynthesis?")

	// Clarification answers skip the repetition guard.
	got := o.Generate(context.Background(), Input{
		Topic:        "photosynthesis",
		Memory:       mem,
		Difficulty:   1,
		TeacherInput: "What did you want to know?",
	})
	if got != "What is the main purpose here?" {
		t.Errorf("got %q", got)
	}
}

func TestFallbackUnknownDifficultyUsesLevelOne(t *testing.T) {
	mock := llm.NewMockProvider()
	o := newOrchestrator(mock)

	got := o.Generate(context.Background(), Input{
		Topic:        "photosynthesis",
		Memory:       conversation.New(),
		Difficulty:   9,
		TeacherInput: "Plants use sunlight to build glucose molecules inside their leaves.",
	})
	if !isKnownFollowUp(got, "photosynthesis", 1) {
		t.Errorf("expected a difficulty-1 fallback, got %q", got)
	}
}

// isKnownFollowUp reports whether got matches one of the follow-up
// fallback templates for the given difficulty.
func isKnownFollowUp(got, topicName string, difficulty int) bool {
	for _, tmpl := range followUpFallbacks[difficulty] {
		if got == tmpl(topicName) {
			return true
		}
	}
	return false
}
