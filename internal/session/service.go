package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/potato4751/teaching-ai-validator/internal/correction"
	"github.com/potato4751/teaching-ai-validator/internal/quality"
	"github.com/potato4751/teaching-ai-validator/internal/respond"
	"github.com/potato4751/teaching-ai-validator/internal/store"
	"github.com/potato4751/teaching-ai-validator/internal/topic"
)

// The only externally visible failures in normal operation.
var (
	ErrEmptyTopic       = errors.New("please provide a topic to teach")
	ErrEmptyExplanation = errors.New("please provide an explanation")
)

// refusalResponse is the fixed short-circuit reply to disrespectful
// input; it is produced without any capability call.
const refusalResponse = "That's not helpful. Could you explain the concept respectfully?"

// refusalScore is the quality score recorded for a refused exchange.
const refusalScore = 0.1

// blocklist holds the disrespect terms that trigger the refusal.
var blocklist = []string{"idiot", "stupid", "dumb", "shut up", "moron"}

// Config tunes the service. Clock is injectable for tests.
type Config struct {
	// Timeout bounds every capability call issued during a turn.
	Timeout time.Duration

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultConfig returns service defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Clock:   time.Now,
	}
}

// StartResult is the outcome of StartTeaching.
type StartResult struct {
	OpeningQuestion string
	Topic           string
	Difficulty      int
}

// StepResult is the outcome of TeachStep.
type StepResult struct {
	AIResponse   string
	QualityScore float64
	Progress     Progress
}

// Service drives teaching sessions. Sessions live in a uuid-keyed map
// with a single active key: one session per process, but the map leaves
// room for multi-session use later.
//
// A single mutex serializes start/teach/reset: the engine assumes at
// most one in-flight turn at a time.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	active   string

	orchestrator *respond.Orchestrator
	machine      *correction.Machine
	events       store.EventRepo
	cfg          Config
}

// New creates a Service with one fresh, topicless active session.
func New(orchestrator *respond.Orchestrator, machine *correction.Machine, events store.EventRepo, cfg Config) *Service {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if events == nil {
		events = store.NopEventRepo{}
	}

	svc := &Service{
		sessions:     make(map[string]*Session),
		orchestrator: orchestrator,
		machine:      machine,
		events:       events,
		cfg:          cfg,
	}
	svc.installFreshSession()
	return svc
}

// installFreshSession replaces the active session. Callers hold s.mu.
func (s *Service) installFreshSession() *Session {
	delete(s.sessions, s.active)
	sess := newSession(s.cfg.Clock())
	s.sessions[sess.ID] = sess
	s.active = sess.ID
	return sess
}

func (s *Service) activeSession() *Session {
	return s.sessions[s.active]
}

// StartTeaching begins a new session on the given topic and returns the
// learner's opening question. Any prior session state is abandoned.
func (s *Service) StartTeaching(ctx context.Context, topicName string) (StartResult, error) {
	topicName = strings.TrimSpace(topicName)
	if topicName == "" {
		return StartResult{}, ErrEmptyTopic
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.installFreshSession()
	sess.Topic = topicName

	analysis := topic.Classify(topicName)
	sess.Memory.SetAnalysis(analysis)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	opening := s.orchestrator.Generate(ctx, respond.Input{
		Topic:          topicName,
		Analysis:       analysis,
		Memory:         sess.Memory,
		Difficulty:     sess.Difficulty,
		TeacherInput:   fmt.Sprintf("I want to learn about %s", topicName),
		IsIntroduction: true,
	})

	return StartResult{
		OpeningQuestion: opening,
		Topic:           topicName,
		Difficulty:      sess.Difficulty,
	}, nil
}

// TeachStep processes one teacher explanation and returns the learner's
// response, the quality score for the exchange, and a progress
// snapshot. There is no fatal path here: capability failures degrade to
// templates inside the orchestrator and judges.
func (s *Service) TeachStep(ctx context.Context, explanation string) (StepResult, error) {
	explanation = strings.TrimSpace(explanation)
	if explanation == "" {
		return StepResult{}, ErrEmptyExplanation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.activeSession()

	// Disrespect filter: deterministic refusal, no capability call.
	// The exchange is still recorded.
	if isDisrespectful(explanation) {
		sess.recordExchange(explanation, refusalResponse, refusalScore)
		s.logTeachStep(ctx, sess, refusalScore)
		return StepResult{
			AIResponse:   refusalResponse,
			QualityScore: refusalScore,
			Progress:     snapshot(sess, s.cfg.Clock()),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var (
		response string
		score    float64
	)

	if sess.Memory.InCorrection() {
		response, score, _ = s.machine.Verify(ctx, sess.Memory, sess.Topic, explanation,
			func(ctx context.Context) string {
				return s.generateFollowUp(ctx, sess, "corrected understanding verified")
			})
	} else {
		result := s.machine.Detect(ctx, sess.Topic, explanation)
		if result.HasErrors {
			response = s.machine.Enter(sess.Memory, result, sess.Topic)
			score = correction.ScoreError
		} else {
			score = quality.Assess(explanation)
			response = s.generateFollowUp(ctx, sess, explanation)
		}
	}

	sess.recordExchange(explanation, response, score)

	// Difficulty is frozen while a correction is being worked through.
	if !sess.Memory.InCorrection() {
		sess.Difficulty = quality.AdjustDifficulty(sess.Difficulty, score, sess.Exchanges, sess.QualityScores)
	}

	s.logTeachStep(ctx, sess, score)

	return StepResult{
		AIResponse:   response,
		QualityScore: score,
		Progress:     snapshot(sess, s.cfg.Clock()),
	}, nil
}

func (s *Service) generateFollowUp(ctx context.Context, sess *Session, teacherInput string) string {
	analysis, _ := sess.Memory.Analysis()
	return s.orchestrator.Generate(ctx, respond.Input{
		Topic:          sess.Topic,
		Analysis:       analysis,
		Memory:         sess.Memory,
		Difficulty:     sess.Difficulty,
		TeacherInput:   teacherInput,
		IsIntroduction: false,
	})
}

// ResetSession abandons all in-flight state and installs a fresh empty
// session. Safe to call at any time; calling it twice yields the same
// empty snapshot.
func (s *Service) ResetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installFreshSession()
}

// Progress returns the current session snapshot.
func (s *Service) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.activeSession(), s.cfg.Clock())
}

// Topic returns the active session's topic ("" before StartTeaching).
func (s *Service) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSession().Topic
}

// Transcript returns a copy of the active session's exchange log.
func (s *Service) Transcript() []TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.activeSession()
	exchanges := sess.Memory.Exchanges()
	entries := make([]TranscriptEntry, len(exchanges))
	for i, ex := range exchanges {
		entries[i] = TranscriptEntry{
			FromTeacher: ex.Speaker == "teacher",
			Text:        ex.Text,
		}
	}
	return entries
}

// TranscriptEntry is one utterance for display.
type TranscriptEntry struct {
	FromTeacher bool
	Text        string
}

func isDisrespectful(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range blocklist {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// logTeachStep appends the exchange to the event log. Best effort.
func (s *Service) logTeachStep(ctx context.Context, sess *Session, score float64) {
	err := s.events.AppendTeachStep(ctx, store.TeachEventData{
		SessionID:    sess.ID,
		Topic:        sess.Topic,
		Exchange:     sess.Exchanges,
		QualityScore: score,
		Difficulty:   sess.Difficulty,
		Correction:   sess.Memory.InCorrection(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log teach event: %v\n", err)
	}
}
