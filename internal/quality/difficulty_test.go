package quality

import "testing"

func TestPromoteOnStrongScore(t *testing.T) {
	if got := AdjustDifficulty(1, 0.8, 2, []float64{0.5, 0.8}); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := AdjustDifficulty(2, 0.75, 5, nil); got != 3 {
		t.Errorf("promotion at threshold: got %d, want 3", got)
	}
}

func TestNoPromoteBeforeSecondExchange(t *testing.T) {
	if got := AdjustDifficulty(1, 0.9, 1, []float64{0.9}); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestPromoteClampedAtMax(t *testing.T) {
	if got := AdjustDifficulty(3, 0.95, 6, nil); got != MaxDifficulty {
		t.Errorf("got %d, want %d", got, MaxDifficulty)
	}
}

func TestDemoteOnSustainedWeakness(t *testing.T) {
	history := []float64{0.5, 0.3, 0.35, 0.2}
	if got := AdjustDifficulty(2, 0.2, 4, history); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestNoDemoteWithRecentStrongScore(t *testing.T) {
	// One score above 0.4 inside the trailing window blocks demotion.
	history := []float64{0.2, 0.9, 0.3, 0.3}
	if got := AdjustDifficulty(2, 0.3, 4, history); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestNoDemoteBeforeFourthExchange(t *testing.T) {
	history := []float64{0.2, 0.2, 0.2}
	if got := AdjustDifficulty(2, 0.2, 3, history); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestDemoteClampedAtMin(t *testing.T) {
	history := []float64{0.1, 0.1, 0.1, 0.1}
	if got := AdjustDifficulty(1, 0.1, 5, history); got != MinDifficulty {
		t.Errorf("got %d, want %d", got, MinDifficulty)
	}
}

func TestMiddlingScoreHolds(t *testing.T) {
	if got := AdjustDifficulty(2, 0.5, 5, []float64{0.5, 0.5, 0.5, 0.5, 0.5}); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
