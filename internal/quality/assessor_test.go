package quality

import "testing"

func TestAssessTooShort(t *testing.T) {
	for _, text := range []string{"", "ok", "hm.."} {
		if got := Assess(text); got != 0.1 {
			t.Errorf("Assess(%q) = %v, want 0.1", text, got)
		}
	}
}

func TestAssessClarifyingQuestion(t *testing.T) {
	cases := []string{
		"What do you mean?",
		"like what?",
		"Can you give an example?",
	}
	for _, text := range cases {
		if got := Assess(text); got != 0.4 {
			t.Errorf("Assess(%q) = %v, want 0.4", text, got)
		}
	}
}

func TestAssessLongQuestionScoredNormally(t *testing.T) {
	// A question longer than 6 words is treated as an explanation
	// attempt, not a clarification.
	text := "What happens is that plants absorb light and then convert it?"
	got := Assess(text)
	if got == 0.4 {
		t.Errorf("Assess(%q) = 0.4, expected indicator scoring", text)
	}
}

func TestAssessSingleIndicator(t *testing.T) {
	// 14 words, no marker terms: only the length indicator fires.
	text := "plants convert sunlight into chemical energy inside their leaves during daylight hours every summer"
	if got := Assess(text); got != 0.2 {
		t.Errorf("Assess(%q) = %v, want 0.2", text, got)
	}
}

func TestAssessFullMarks(t *testing.T) {
	// All five indicators plus the length bonus, clamped to 1.0.
	text := "First, you should know that photosynthesis happens because plants need energy; for example, a leaf captures sunlight, then converts it step by step into sugar, and you can imagine chloroplasts as tiny factories."
	if got := Assess(text); got != 1.0 {
		t.Errorf("Assess(full marks) = %v, want 1.0", got)
	}
}

func TestAssessLengthBonus(t *testing.T) {
	// Two indicators (length >= 12 words, reasoning marker), 27 words
	// total: 0.4 + 0.2 bonus.
	text := "Plants grow towards light because their cells respond to brightness, and over many days a plant on a windowsill will visibly bend its whole stem towards the window."
	if got := Assess(text); got != 0.6 {
		t.Errorf("Assess(length bonus) = %v, want 0.6", got)
	}
}

func TestIsTeacherQuestion(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"What kind of sunlight do they need?", true},
		{"could you repeat that", true},
		{"Plants use sunlight to make food.", false},
		{"They store energy in glucose", false},
	}
	for _, tc := range cases {
		if got := IsTeacherQuestion(tc.text); got != tc.want {
			t.Errorf("IsTeacherQuestion(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
