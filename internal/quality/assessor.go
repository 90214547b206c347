// Package quality scores teacher explanations with cheap lexical
// heuristics and drives the 3-level difficulty controller. The score is
// a proxy for explanation effort, not a correctness judgment; factual
// checking lives in the factcheck package.
package quality

import (
	"math"
	"strings"
)

var (
	exampleMarkers   = []string{"example", "like", "such as"}
	reasoningMarkers = []string{"because", "since", "reason"}
	sequenceMarkers  = []string{"first", "then", "step"}
	engageMarkers    = []string{"you", "imagine"}
)

// Assess scores a single explanation in [0,1]. The formula is fixed and
// deterministic; callers depend on exact values, so any change here is a
// behavior change:
//
//   - empty or shorter than 5 characters → 0.1
//   - a question of at most 6 words → 0.4 (a clarifying question, not an
//     attempt to teach)
//   - otherwise the mean of five boolean indicators (≥12 words, example
//     marker, reasoning marker, sequencing marker, engagement marker),
//     +0.2 if longer than 25 words, clamped to 1.0 and rounded to two
//     decimals.
func Assess(explanation string) float64 {
	if len(explanation) < 5 {
		return 0.1
	}

	words := strings.Fields(explanation)
	if isClarifyingQuestion(explanation) && len(words) <= 6 {
		return 0.4
	}

	lower := strings.ToLower(explanation)
	indicators := []bool{
		len(words) >= 12,
		containsAny(lower, exampleMarkers),
		containsAny(lower, reasoningMarkers),
		containsAny(lower, sequenceMarkers),
		containsAny(lower, engageMarkers),
	}

	hit := 0
	for _, ok := range indicators {
		if ok {
			hit++
		}
	}
	score := float64(hit) / float64(len(indicators))

	if len(words) > 25 {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return math.Round(score*100) / 100
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// isClarifyingQuestion mirrors the orchestrator's teacher-question
// detection: trailing question mark, interrogative opener, or a
// clarification phrase.
func isClarifyingQuestion(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, starter := range []string{"what", "how", "why", "when", "where", "which", "who", "can you", "could you"} {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}

	for _, pattern := range []string{"what kind of", "what type of", "like what", "such as what", "for example"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

// IsTeacherQuestion reports whether a teacher input reads as a
// clarifying question aimed at the learner. Exported for the response
// orchestrator, which uses the same detection to pick its prompt mode.
func IsTeacherQuestion(text string) bool {
	return isClarifyingQuestion(text)
}
