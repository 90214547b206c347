// Package respond generates the simulated learner's utterances: the
// opening question for a new topic, answers to teacher clarifications,
// and difficulty-scaled follow-up questions. Generation failures and
// duplicate questions degrade to deterministic fallback templates.
package respond

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/potato4751/teaching-ai-validator/internal/conversation"
	"github.com/potato4751/teaching-ai-validator/internal/llm"
	"github.com/potato4751/teaching-ai-validator/internal/quality"
	"github.com/potato4751/teaching-ai-validator/internal/topic"
)

// Config holds generation tuning. Questions run hot for variety; the
// short token cap keeps replies question-sized.
type Config struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   120,
		Temperature: 0.9,
		TopP:        0.95,
	}
}

// Input carries everything one generation turn needs.
type Input struct {
	Topic          string
	Analysis       topic.Analysis
	Memory         *conversation.Memory
	Difficulty     int
	TeacherInput   string
	IsIntroduction bool
}

// Orchestrator builds prompts, invokes the provider, and guards against
// repeated questions. Randomness (fallback selection) is injected for
// test determinism.
type Orchestrator struct {
	provider llm.Provider
	cfg      Config
	rng      *rand.Rand
}

// New creates an Orchestrator.
func New(provider llm.Provider, cfg Config, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{provider: provider, cfg: cfg, rng: rng}
}

// Generate produces the learner's next utterance. It must only be
// called while correction mode is inactive; the correction machine owns
// that path. It never fails: capability errors and duplicate questions
// both resolve to a fallback template.
func (o *Orchestrator) Generate(ctx context.Context, in Input) string {
	teacherAsking := quality.IsTeacherQuestion(in.TeacherInput) && !in.IsIntroduction

	var system string
	switch {
	case teacherAsking:
		system = clarificationSystem(in.Topic, in.Memory.LastAIQuestion())
	case in.IsIntroduction:
		system = introductionSystem(in.Topic, in.Analysis)
	default:
		system = followUpSystem(in.Topic, in.Memory.Depth(), in.Difficulty)
	}

	messages := buildMessages(in.Memory, in.TeacherInput, in.Topic, in.Difficulty, teacherAsking)

	ctx = llm.WithPurpose(ctx, "question-gen")
	resp, err := o.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    messages,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
		TopP:        o.cfg.TopP,
	})
	if err != nil {
		return o.fallback(in.Topic, teacherAsking, in.Difficulty)
	}

	generated := strings.TrimSpace(resp.Text())
	if generated == "" {
		return o.fallback(in.Topic, teacherAsking, in.Difficulty)
	}

	// Repetition guard. Skipped for clarification answers (they are
	// answers first, questions second) and for the very first exchange.
	if !teacherAsking && in.Memory.Depth() > 0 && in.Memory.HasAskedSimilar(generated) {
		return o.fallback(in.Topic, teacherAsking, in.Difficulty)
	}

	return generated
}
