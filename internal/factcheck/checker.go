// Package factcheck wraps the two structured judge calls of the
// dialogue engine: detecting factual errors in teacher explanations and
// assessing whether a teacher's reply shows understanding of a
// correction. Both calls fail open: a broken judge degrades the
// dialogue, it never interrupts it.
package factcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/potato4751/teaching-ai-validator/internal/llm"
)

// minFactCheckWords is the explanation length below which fact-checking
// is skipped entirely; very short inputs are not worth a judge call.
const minFactCheckWords = 8

// minAssessWords is the reply length below which the understanding
// judge is skipped and the reply treated as not understood.
const minAssessWords = 3

// Config holds judge-call tuning.
type Config struct {
	FactCheckMaxTokens int
	AssessMaxTokens    int
	Temperature        float64
}

// DefaultConfig returns sensible defaults: cold temperature for
// consistent judging, short token caps.
func DefaultConfig() Config {
	return Config{
		FactCheckMaxTokens: 150,
		AssessMaxTokens:    100,
		Temperature:        0.3,
	}
}

// Checker performs the judge calls against an llm.Provider.
type Checker struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Checker.
func New(provider llm.Provider, cfg Config) *Checker {
	return &Checker{provider: provider, cfg: cfg}
}

// Result is the outcome of a fact-check call.
type Result struct {
	HasErrors          bool   `json:"has_errors"`
	IncorrectConcept   string `json:"incorrect_concept"`
	CorrectExplanation string `json:"correct_explanation"`
}

// Assessment is the outcome of an understanding-assessment call.
type Assessment struct {
	ShowsUnderstanding bool    `json:"shows_understanding"`
	Confidence         float64 `json:"confidence"`
	Encouragement      string  `json:"encouragement"`
}

const factCheckSystemTmpl = `You are an expert fact-checker evaluating a student's explanation about %s.

Your job is to identify if there are any FACTUAL ERRORS in their explanation.

CRITICAL RULES:
- Only flag CLEAR FACTUAL ERRORS, not incomplete explanations
- Ignore minor wording issues or simplifications
- Focus on scientifically/factually incorrect statements
- If explanation is just incomplete or basic, that's NOT an error

Respond with a JSON object: {"has_errors": true/false, "incorrect_concept": "specific wrong concept if any", "correct_explanation": "brief correct version if error found"}

Examples:
- "Plants eat sunlight" -> {"has_errors": true, "incorrect_concept": "plants eating sunlight", "correct_explanation": "Plants convert sunlight into chemical energy through photosynthesis"}
- "Photosynthesis uses sunlight" -> {"has_errors": false}`

var factCheckUserTemplate = template.Must(template.New("factcheck").Parse(
	`Student explanation about {{.Topic}}: '{{.Explanation}}'`))

// Check runs the fact-check judge on one explanation. Explanations
// shorter than 8 words are never flagged. Any call failure, malformed
// JSON, or schema violation yields (no errors, nil): teaching proceeds
// normally when the judge is unavailable.
func (c *Checker) Check(ctx context.Context, topicName, explanation string) Result {
	if len(strings.Fields(explanation)) < minFactCheckWords {
		return Result{}
	}

	ctx = llm.WithPurpose(ctx, "fact-check")

	userMsg, err := renderTemplate(factCheckUserTemplate, map[string]string{
		"Topic":       topicName,
		"Explanation": explanation,
	})
	if err != nil {
		return Result{}
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: fmt.Sprintf(factCheckSystemTmpl, topicName),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      FactCheckSchema,
		MaxTokens:   c.cfg.FactCheckMaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return Result{}
	}

	var result Result
	if err := json.Unmarshal(resp.Content, &result); err != nil {
		return Result{}
	}
	return result
}

const assessSystemTmpl = `You are assessing if a student understood a correction about "%s".

Respond with a JSON object: {"shows_understanding": true/false, "confidence": 0.0-1.0, "encouragement": "brief encouraging comment"}

High understanding = uses correct terminology, shows grasp of concept
Low understanding = still confused, incorrect facts, vague response`

var assessUserTemplate = template.Must(template.New("assess").Parse(
	`Student response: '{{.Response}}'`))

// AssessUnderstanding runs the understanding judge on one teacher reply
// during the verification loop. Replies under 3 words are rejected
// without a call. On judge failure the fallback is word-count based:
// understood iff the reply exceeds 10 words, at confidence 0.5.
func (c *Checker) AssessUnderstanding(ctx context.Context, correctionTopic, response string) Assessment {
	wordCount := len(strings.Fields(response))
	if wordCount < minAssessWords {
		return Assessment{ShowsUnderstanding: false, Confidence: 0.1}
	}

	ctx = llm.WithPurpose(ctx, "understanding")

	userMsg, err := renderTemplate(assessUserTemplate, map[string]string{
		"Response": response,
	})
	if err != nil {
		return fallbackAssessment(wordCount)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: fmt.Sprintf(assessSystemTmpl, correctionTopic),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      UnderstandingSchema,
		MaxTokens:   c.cfg.AssessMaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return fallbackAssessment(wordCount)
	}

	var result Assessment
	if err := json.Unmarshal(resp.Content, &result); err != nil {
		return fallbackAssessment(wordCount)
	}
	return result
}

func fallbackAssessment(wordCount int) Assessment {
	return Assessment{
		ShowsUnderstanding: wordCount > 10,
		Confidence:         0.5,
		Encouragement:      "Good effort!",
	}
}

func renderTemplate(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
