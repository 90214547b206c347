package respond

import "fmt"

// Fallback templates, keyed by prompt mode and difficulty. They cover
// two failure paths that must stay invisible to the teacher: a
// capability failure, and a generated question that duplicates one
// already asked. Selection among the options is random but randomness
// is presentation only; it never affects scoring or state.

// clarificationFallbacks answer a teacher question when generation
// failed.
var clarificationFallbacks = []func(topic string) string{
	func(topic string) string {
		return fmt.Sprintf("I meant the key aspects of %s! What's the most important part?", topic)
	},
	func(topic string) string {
		return fmt.Sprintf("The main elements that make %s work! Which one should I focus on?", topic)
	},
	func(topic string) string {
		return fmt.Sprintf("Let me clarify - I was curious about how %s actually functions!", topic)
	},
}

// followUpFallbacks are keyed by difficulty level 1-3.
var followUpFallbacks = map[int][]func(topic string) string{
	1: {
		func(topic string) string {
			return fmt.Sprintf("That's fascinating! What's the main purpose of %s?", topic)
		},
		func(topic string) string {
			return fmt.Sprintf("Wow! How does %s actually work?", topic)
		},
		func(topic string) string {
			return fmt.Sprintf("Interesting! What makes %s happen?", topic)
		},
	},
	2: {
		func(topic string) string {
			return fmt.Sprintf("Great explanation! How do the different parts of %s connect?", topic)
		},
		func(topic string) string {
			return fmt.Sprintf("That's helpful! What controls how %s works?", topic)
		},
		func(topic string) string {
			return fmt.Sprintf("I see! What happens if conditions change in %s?", topic)
		},
	},
	3: {
		func(topic string) string {
			return fmt.Sprintf("Excellent! What are some real-world applications of %s?", topic)
		},
		func(topic string) string {
			return fmt.Sprintf("Amazing! How has %s evolved over time?", topic)
		},
		func(topic string) string {
			return fmt.Sprintf("Brilliant! How does %s compare to similar processes?", topic)
		},
	},
}

// fallback picks a templated response for the given mode and difficulty.
func (o *Orchestrator) fallback(topicName string, teacherAsking bool, difficulty int) string {
	if teacherAsking {
		return clarificationFallbacks[o.rng.IntN(len(clarificationFallbacks))](topicName)
	}

	options, ok := followUpFallbacks[difficulty]
	if !ok {
		options = followUpFallbacks[1]
	}
	return options[o.rng.IntN(len(options))](topicName)
}
