package correction

import "fmt"

// correctionTemplates produce the message emitted when an error is
// first detected. Arguments: incorrect concept, correct explanation,
// session topic (twice for the templates that reference it twice).
var correctionTemplates = []func(concept, correct, topic string) string{
	func(concept, correct, topic string) string {
		return fmt.Sprintf("Actually, I need to correct something about %s! %s. Let me ask you: can you explain back to me how %s actually works based on this correction?", concept, correct, topic)
	},
	func(concept, correct, topic string) string {
		return fmt.Sprintf("Hold on! There's a small error with %s. Here's what actually happens: %s. Now, based on this correction, what do you think is the key process in %s?", concept, correct, topic)
	},
	func(concept, correct, topic string) string {
		return fmt.Sprintf("I want to help clarify something! %s isn't quite right. The correct explanation is: %s. To make sure you understand, can you tell me what the main steps of %s are now?", concept, correct, topic)
	},
}

// firstVerificationTemplates are used for verification question #1;
// they ask how the concept works or what role it plays.
var firstVerificationTemplates = []func(concept, topic string) string{
	func(concept, topic string) string {
		return fmt.Sprintf("Great! Now can you explain to me how %s actually works in %s?", concept, topic)
	},
	func(concept, topic string) string {
		return fmt.Sprintf("Perfect! So based on that correction, what's the key thing that happens with %s during %s?", concept, topic)
	},
	func(concept, topic string) string {
		return fmt.Sprintf("Excellent! Now tell me, what role does %s play in the process of %s?", concept, topic)
	},
}

// laterVerificationTemplates are used from question #2 on; they probe
// with an example, a counterfactual, or an importance justification.
var laterVerificationTemplates = []func(concept, topic string) string{
	func(concept, topic string) string {
		return fmt.Sprintf("I want to make sure this is clear - can you give me an example of %s in %s?", concept, topic)
	},
	func(concept, topic string) string {
		return fmt.Sprintf("Let me ask differently - what would happen if %s didn't work properly during %s?", concept, topic)
	},
	func(concept, topic string) string {
		return fmt.Sprintf("One more check - why is %s important for %s?", concept, topic)
	},
}
