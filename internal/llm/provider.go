package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction over the hosted text-generation
// service. The dialogue engine uses it in two shapes: free-text question
// generation (no Schema) and structured judging (Schema set, response
// validated against it).
type Provider interface {
	// Generate sends one synchronous request and returns the response.
	// When req.Schema is set the Content is JSON validated against it;
	// otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single round trip to the provider.
type Request struct {
	// System is the system prompt framing the model's role.
	System string

	// Messages is the conversation history, oldest first.
	Messages []Message

	// Schema, when set, requests structured JSON output conforming to it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero means provider default.
	Temperature float64

	// TopP is nucleus sampling, 0.0 - 1.0. Zero means provider default.
	// Question generation runs hot (temperature 0.9, top_p 0.95); judge
	// calls run cold and leave this unset.
	TopP float64
}

// Message is one turn of conversation history.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from a judge call.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "fact-check".
	Name string

	// Description tells the model what this schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the provider's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// requested, raw text bytes otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response content as a plain string. Unstructured
// generation stores raw text bytes in Content, so this is a direct
// conversion.
func (r *Response) Text() string {
	return string(r.Content)
}
