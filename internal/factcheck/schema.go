package factcheck

import "github.com/potato4751/teaching-ai-validator/internal/llm"

// FactCheckSchema defines the JSON contract for fact-check responses.
// Only has_errors is required; the concept and correction fields are
// meaningful only when has_errors is true.
var FactCheckSchema = &llm.Schema{
	Name:        "fact-check",
	Description: "Factual error detection for a teacher's explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"has_errors": map[string]any{
				"type":        "boolean",
				"description": "Whether the explanation contains a clear factual error",
			},
			"incorrect_concept": map[string]any{
				"type":        "string",
				"description": "The specific wrong concept, when an error was found",
			},
			"correct_explanation": map[string]any{
				"type":        "string",
				"description": "A brief correct version, when an error was found",
			},
		},
		"required": []any{"has_errors"},
	},
}

// UnderstandingSchema defines the JSON contract for understanding
// assessments during the verification loop.
var UnderstandingSchema = &llm.Schema{
	Name:        "understanding-assessment",
	Description: "Assessment of whether a teacher's reply shows understanding of a correction",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"shows_understanding": map[string]any{
				"type":        "boolean",
				"description": "Whether the reply shows grasp of the corrected concept",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence in the assessment (0.0-1.0)",
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "Brief encouraging comment",
			},
		},
		"required": []any{"shows_understanding", "confidence"},
	},
}
