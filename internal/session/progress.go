package session

import (
	"math"
	"time"
)

// Trend describes the direction of recent teaching quality.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
	TrendNeutral   Trend = "neutral"
)

// trendDelta is the average-score gap that separates improving or
// declining from stable.
const trendDelta = 0.2

// Progress is a point-in-time snapshot of the session returned with
// every teach step.
type Progress struct {
	AverageQuality  float64 `json:"average_quality"`
	Exchanges       int     `json:"exchanges"`
	Trend           Trend   `json:"improvement_trend"`
	Difficulty      int     `json:"confusion_level"`
	DurationMinutes float64 `json:"session_duration"`
	LatestScore     float64 `json:"latest_score"`
	CorrectionMode  bool    `json:"correction_mode"`
	CorrectionsMade int     `json:"corrections_made"`
}

// snapshot builds the Progress for a session at the given time.
func snapshot(s *Session, now time.Time) Progress {
	p := Progress{
		Trend:           TrendNeutral,
		Difficulty:      s.Difficulty,
		CorrectionMode:  s.Memory.InCorrection(),
		CorrectionsMade: s.Memory.CorrectionsMade(),
	}

	if len(s.QualityScores) == 0 {
		return p
	}

	var sum float64
	for _, score := range s.QualityScores {
		sum += score
	}
	p.AverageQuality = round2(sum / float64(len(s.QualityScores)))
	p.Exchanges = s.Exchanges
	p.LatestScore = s.QualityScores[len(s.QualityScores)-1]
	p.Trend = computeTrend(s.QualityScores)
	p.DurationMinutes = math.Round(now.Sub(s.StartedAt).Minutes()*10) / 10

	return p
}

// computeTrend compares the mean of the last two scores against the
// mean of the first two. Neutral until at least three scores exist.
func computeTrend(scores []float64) Trend {
	if len(scores) < 3 {
		return TrendNeutral
	}

	recent := (scores[len(scores)-2] + scores[len(scores)-1]) / 2
	early := (scores[0] + scores[1]) / 2

	switch {
	case recent > early+trendDelta:
		return TrendImproving
	case recent < early-trendDelta:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
