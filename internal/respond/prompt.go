package respond

import (
	"fmt"

	"github.com/potato4751/teaching-ai-validator/internal/conversation"
	"github.com/potato4751/teaching-ai-validator/internal/llm"
	"github.com/potato4751/teaching-ai-validator/internal/topic"
)

// historyWindow is the number of recent exchanges included in the
// generation prompt.
const historyWindow = 8

// difficultyInstructions scales the follow-up prompt by difficulty.
var difficultyInstructions = map[int]string{
	1: "Ask basic, foundational questions",
	2: "Ask detailed questions about how things work",
	3: "Ask sophisticated questions about applications and complex scenarios",
}

// clarificationSystem frames the prompt when the teacher asked the
// learner a clarifying question.
func clarificationSystem(topicName, lastAIQuestion string) string {
	return fmt.Sprintf(`You are an enthusiastic student learning about %s.

The teacher asked you a clarifying question about: "%s"

Answer their question helpfully, then ask ONE follow-up question about %s. Be enthusiastic and curious.`, topicName, lastAIQuestion, topicName)
}

// introductionSystem frames the single opening question for a new topic.
func introductionSystem(topicName string, analysis topic.Analysis) string {
	return fmt.Sprintf(`You are an excited student who wants to learn about %s.

TOPIC TYPE: %s

Ask ONE enthusiastic opening question that shows genuine curiosity about %s. Be conversational and excited.`, topicName, analysis.Category, topicName)
}

// followUpSystem frames the difficulty-scaled follow-up question.
func followUpSystem(topicName string, depth, difficulty int) string {
	return fmt.Sprintf(`You are an enthusiastic student learning about %s.

Exchange #%d, Difficulty level: %d/3

%s. Ask ONE question that builds on their latest explanation. Reference something specific they just said. Be excited about learning.

Never repeat questions you've asked before.`, topicName, depth, difficulty, difficultyInstructions[difficulty])
}

// buildMessages converts the recent exchange window into provider
// messages and appends the turn-specific instruction.
func buildMessages(mem *conversation.Memory, teacherInput, topicName string, difficulty int, teacherAsking bool) []llm.Message {
	window := mem.RecentWindow(historyWindow)
	messages := make([]llm.Message, 0, len(window)+1)

	for _, ex := range window {
		if ex.Speaker == conversation.SpeakerTeacher {
			messages = append(messages, llm.Message{
				Role:    llm.RoleUser,
				Content: "Teacher: " + ex.Text,
			})
		} else {
			messages = append(messages, llm.Message{
				Role:    llm.RoleAssistant,
				Content: ex.Text,
			})
		}
	}

	var instruction string
	if teacherAsking {
		instruction = fmt.Sprintf(`Teacher asked: "%s"

Answer their question, then ask ONE follow-up about %s.`, teacherInput, topicName)
	} else {
		instruction = fmt.Sprintf(`Teacher explained: "%s"

Ask ONE enthusiastic question at difficulty level %d.`, teacherInput, difficulty)
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: instruction})
}
