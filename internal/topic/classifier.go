// Package topic classifies free-text teaching topics into coarse
// categories that steer what kind of questions the simulated learner
// asks.
package topic

import "strings"

// Category is the coarse kind of a teaching topic.
type Category string

const (
	CategoryGame       Category = "game"
	CategorySkill      Category = "skill"
	CategoryHistorical Category = "historical_event"
	CategoryScientific Category = "scientific_process"
	CategoryConcept    Category = "concept"
	CategoryTechnology Category = "technology"
	CategoryGeneral    Category = "general"
)

// Analysis is the classification result for a topic string. It is
// computed once per session and never mutated.
type Analysis struct {
	Category        Category
	QuestionFocuses []string
	Context         string
}

// entry pairs a keyword list with the analysis it produces.
type entry struct {
	keywords []string
	analysis Analysis
}

// entries is evaluated in order and the first match wins. The ordering
// is an observable tie-break ("playing chess" is a game, not a skill),
// so do not reorder.
var entries = []entry{
	{
		keywords: []string{"game", "chess", "football", "soccer", "basketball", "poker", "monopoly", "video game", "sport", "play"},
		analysis: Analysis{
			Category:        CategoryGame,
			QuestionFocuses: []string{"rules", "strategy", "objectives", "gameplay", "tactics", "scoring"},
			Context:         "This is a game or sport",
		},
	},
	{
		keywords: []string{"playing", "writing", "painting", "coding", "programming", "driving", "cooking", "singing", "dancing"},
		analysis: Analysis{
			Category:        CategorySkill,
			QuestionFocuses: []string{"techniques", "learning process", "practice methods", "common mistakes", "mastery"},
			Context:         "This is a skill or ability",
		},
	},
	{
		keywords: []string{"war", "revolution", "battle", "election", "independence", "empire", "civilization", "ancient", "medieval"},
		analysis: Analysis{
			Category:        CategoryHistorical,
			QuestionFocuses: []string{"causes", "consequences", "key figures", "timeline", "impact", "significance"},
			Context:         "This is a historical event or period",
		},
	},
	{
		keywords: []string{"photosynthesis", "mitosis", "respiration", "evolution", "digestion", "circulation", "metabolism"},
		analysis: Analysis{
			Category:        CategoryScientific,
			QuestionFocuses: []string{"steps", "mechanisms", "inputs/outputs", "purpose", "conditions", "variations"},
			Context:         "This is a scientific or biological process",
		},
	},
	{
		keywords: []string{"democracy", "justice", "freedom", "love", "happiness", "philosophy", "theory", "principle"},
		analysis: Analysis{
			Category:        CategoryConcept,
			QuestionFocuses: []string{"definition", "examples", "applications", "implications", "perspectives"},
			Context:         "This is an abstract concept or idea",
		},
	},
	{
		keywords: []string{"smartphone", "computer", "internet", "ai", "robot", "software", "app", "algorithm"},
		analysis: Analysis{
			Category:        CategoryTechnology,
			QuestionFocuses: []string{"how it works", "components", "uses", "evolution", "impact", "future"},
			Context:         "This is technology or a technological system",
		},
	},
}

// generalAnalysis is the fallback when no keyword list matches.
var generalAnalysis = Analysis{
	Category:        CategoryGeneral,
	QuestionFocuses: []string{"definition", "examples", "how it works", "importance", "applications"},
	Context:         "This is a general topic",
}

// Classify maps a topic string to its Analysis. Pure and total: the same
// input always yields the same result and no input fails.
func Classify(topic string) Analysis {
	lower := strings.ToLower(topic)
	for _, e := range entries {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return e.analysis
			}
		}
	}
	return generalAnalysis
}
