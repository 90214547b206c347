package quality

// Difficulty bounds. The simulated learner asks level-1 foundational
// questions through level-3 sophisticated ones.
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

const (
	promoteScore  = 0.75
	promoteFloor  = 2 // minimum exchanges before promotion
	demoteScore   = 0.35
	demoteFloor   = 4 // minimum exchanges before demotion
	demoteWindow  = 3 // trailing scores examined for demotion
	demoteCeiling = 0.4
)

// AdjustDifficulty returns the next difficulty level given the latest
// quality score, the exchange count, and the full score history. This is
// a step controller: one level up on a strong explanation, one level
// down after a sustained weak stretch, otherwise unchanged.
//
// Callers must skip adjustment entirely while correction mode is active;
// difficulty is frozen during remediation.
func AdjustDifficulty(current int, score float64, exchanges int, history []float64) int {
	if score >= promoteScore && exchanges >= promoteFloor {
		return clampDifficulty(current + 1)
	}

	if score <= demoteScore && exchanges >= demoteFloor {
		recent := history
		if len(recent) > demoteWindow {
			recent = recent[len(recent)-demoteWindow:]
		}
		allWeak := true
		for _, s := range recent {
			if s > demoteCeiling {
				allWeak = false
				break
			}
		}
		if allWeak {
			return clampDifficulty(current - 1)
		}
	}

	return clampDifficulty(current)
}

func clampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
