package session

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/potato4751/teaching-ai-validator/internal/correction"
	"github.com/potato4751/teaching-ai-validator/internal/factcheck"
	"github.com/potato4751/teaching-ai-validator/internal/llm"
	"github.com/potato4751/teaching-ai-validator/internal/respond"
)

func newTestService(mock *llm.MockProvider) *Service {
	rng := rand.New(rand.NewPCG(3, 9))
	checker := factcheck.New(mock, factcheck.DefaultConfig())
	return New(
		respond.New(mock, respond.DefaultConfig(), rng),
		correction.NewMachine(checker, rng),
		nil,
		Config{Timeout: time.Second},
	)
}

func text(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func jsonResp(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

const noErrors = `{"has_errors":false}`

// Rich explanations that hit every quality indicator.
const (
	goodExplanation1 = "Photosynthesis happens because plants capture sunlight, for example in their leaves, then convert it step by step into glucose, and you can imagine it as a tiny solar factory."
	goodExplanation2 = "Next, the plant stores glucose because it needs energy later, for example during the night, and you can imagine starch acting like a battery step by step."
	wrongExplanation = "Plants eat sunlight directly and store it as food in their roots."
)

func TestStartTeachingValidation(t *testing.T) {
	svc := newTestService(llm.NewMockProvider())

	_, err := svc.StartTeaching(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTopic)
}

func TestTeachStepValidation(t *testing.T) {
	svc := newTestService(llm.NewMockProvider())

	_, err := svc.TeachStep(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyExplanation)
}

func TestFullTeachingScenario(t *testing.T) {
	mock := llm.NewMockProvider(
		// StartTeaching: opening question.
		text("Can you explain what photosynthesis actually does?"),
		// Step 1: fact-check passes, follow-up generated.
		jsonResp(noErrors),
		text("How do plants use the glucose they produce?"),
		// Step 2: fact-check passes, follow-up generated.
		jsonResp(noErrors),
		text("What role does chlorophyll play during light absorption?"),
		// Step 3: fact-check flags an error.
		jsonResp(`{"has_errors":true,"incorrect_concept":"plants eating sunlight","correct_explanation":"Plants convert sunlight into chemical energy through photosynthesis"}`),
		// Step 4: understanding judge confirms, then the resolution
		// follow-up is generated.
		jsonResp(`{"shows_understanding":true,"confidence":0.9,"encouragement":"Great recovery!"}`),
		text("Why is sunlight necessary for making food in leaves?"),
	)
	svc := newTestService(mock)
	ctx := context.Background()

	start, err := svc.StartTeaching(ctx, "photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, "Can you explain what photosynthesis actually does?", start.OpeningQuestion)
	assert.Equal(t, 1, start.Difficulty)

	// Exchange 1: strong explanation, but difficulty holds before the
	// second exchange.
	step1, err := svc.TeachStep(ctx, goodExplanation1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, step1.QualityScore)
	assert.Equal(t, "How do plants use the glucose they produce?", step1.AIResponse)
	assert.Equal(t, 1, step1.Progress.Difficulty)
	assert.Equal(t, 1, step1.Progress.Exchanges)

	// Exchange 2: strong again, difficulty rises to 2.
	step2, err := svc.TeachStep(ctx, goodExplanation2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, step2.QualityScore)
	assert.Equal(t, 2, step2.Progress.Difficulty)

	// Exchange 3: factual error triggers a correction.
	step3, err := svc.TeachStep(ctx, wrongExplanation)
	require.NoError(t, err)
	assert.Equal(t, correction.ScoreError, step3.QualityScore)
	assert.Contains(t, step3.AIResponse, "plants eating sunlight")
	assert.True(t, step3.Progress.CorrectionMode)
	assert.Equal(t, 1, step3.Progress.CorrectionsMade)
	// Difficulty is frozen while the correction is open.
	assert.Equal(t, 2, step3.Progress.Difficulty)

	// Exchange 4: a confident corrected reply resolves the correction.
	step4, err := svc.TeachStep(ctx, "Plants convert light energy into chemical energy stored in glucose.")
	require.NoError(t, err)
	assert.Equal(t, correction.ScoreVerified, step4.QualityScore)
	assert.True(t, strings.HasPrefix(step4.AIResponse, "Perfect! You've got it now!"))
	assert.Contains(t, step4.AIResponse, "Great recovery!")
	assert.Contains(t, step4.AIResponse, "Why is sunlight necessary for making food in leaves?")
	assert.False(t, step4.Progress.CorrectionMode)
	assert.Equal(t, 1, step4.Progress.CorrectionsMade)
	// The resolving exchange scores 0.8, which promotes again.
	assert.Equal(t, 3, step4.Progress.Difficulty)

	// Final progress: scores were [1.0, 1.0, 0.2, 0.8].
	p := step4.Progress
	assert.Equal(t, 4, p.Exchanges)
	assert.Equal(t, 0.75, p.AverageQuality)
	assert.Equal(t, 0.8, p.LatestScore)
	assert.Equal(t, TrendDeclining, p.Trend)
}

func TestBlocklistShortCircuits(t *testing.T) {
	mock := llm.NewMockProvider(text("What makes photosynthesis happen?"))
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.StartTeaching(ctx, "photosynthesis")
	require.NoError(t, err)
	callsAfterStart := mock.CallCount()

	step, err := svc.TeachStep(ctx, "this is stupid and you know it")
	require.NoError(t, err)
	assert.Equal(t, "That's not helpful. Could you explain the concept respectfully?", step.AIResponse)
	assert.Equal(t, 0.1, step.QualityScore)
	// The exchange is recorded, but no capability call is made.
	assert.Equal(t, 1, step.Progress.Exchanges)
	assert.Equal(t, callsAfterStart, mock.CallCount())
}

func TestTeachStepWithoutStart(t *testing.T) {
	// Teaching without a started session still works against the blank
	// session; the fallback templates carry an empty topic.
	svc := newTestService(llm.NewMockProvider())

	step, err := svc.TeachStep(context.Background(), "Plants convert light energy into sugar over the day.")
	require.NoError(t, err)
	assert.NotEmpty(t, step.AIResponse)
	assert.Equal(t, 1, step.Progress.Exchanges)
}

func TestResetSession(t *testing.T) {
	mock := llm.NewMockProvider(
		text("What is photosynthesis?"),
		jsonResp(noErrors),
		text("How does the light get captured?"),
	)
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.StartTeaching(ctx, "photosynthesis")
	require.NoError(t, err)
	_, err = svc.TeachStep(ctx, goodExplanation1)
	require.NoError(t, err)

	svc.ResetSession()

	p := svc.Progress()
	assert.Equal(t, 0, p.Exchanges)
	assert.Equal(t, 0.0, p.AverageQuality)
	assert.Equal(t, 1, p.Difficulty)
	assert.Equal(t, TrendNeutral, p.Trend)
	assert.Empty(t, svc.Topic())

	// Reset twice is the same as reset once.
	svc.ResetSession()
	assert.Equal(t, 0, svc.Progress().Exchanges)
}

func TestStartTeachingReplacesSession(t *testing.T) {
	mock := llm.NewMockProvider(
		text("What is photosynthesis?"),
		jsonResp(noErrors),
		text("Tell me more about the leaves?"),
		text("What is mitosis?"),
	)
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.StartTeaching(ctx, "photosynthesis")
	require.NoError(t, err)
	_, err = svc.TeachStep(ctx, goodExplanation1)
	require.NoError(t, err)

	start, err := svc.StartTeaching(ctx, "mitosis")
	require.NoError(t, err)
	assert.Equal(t, "What is mitosis?", start.OpeningQuestion)
	assert.Equal(t, 1, start.Difficulty)
	assert.Equal(t, 0, svc.Progress().Exchanges)
	assert.Equal(t, "mitosis", svc.Topic())
}

func TestTranscript(t *testing.T) {
	mock := llm.NewMockProvider(
		text("What is photosynthesis?"),
		jsonResp(noErrors),
		text("How does the light get captured?"),
	)
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.StartTeaching(ctx, "photosynthesis")
	require.NoError(t, err)
	_, err = svc.TeachStep(ctx, goodExplanation1)
	require.NoError(t, err)

	entries := svc.Transcript()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].FromTeacher)
	assert.Equal(t, goodExplanation1, entries[0].Text)
	assert.False(t, entries[1].FromTeacher)
	assert.Equal(t, "How does the light get captured?", entries[1].Text)
}
