// Package session owns the TeachingSession aggregate and the
// operations the transport layer calls: StartTeaching, TeachStep,
// ResetSession, Progress. One session is active at a time; the service
// serializes turns with a single lock.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/potato4751/teaching-ai-validator/internal/conversation"
)

// Session aggregates the mutable state of one teaching dialogue.
// All mutation goes through the Service; the zero difficulty is never
// used; a fresh session starts at level 1.
type Session struct {
	ID            string
	Topic         string
	Memory        *conversation.Memory
	Difficulty    int
	QualityScores []float64
	Exchanges     int
	StartedAt     time.Time
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Memory:     conversation.New(),
		Difficulty: 1,
		StartedAt:  now,
	}
}

// recordExchange appends one completed teacher/AI pair and its score.
func (s *Session) recordExchange(teacherText, aiText string, score float64) {
	s.Memory.Record(teacherText, aiText)
	s.QualityScores = append(s.QualityScores, score)
	s.Exchanges++
}
