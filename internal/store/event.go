package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter llm_events by purpose ("" = all)
}

// LLMEventData captures one LLM API call for appending.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM call event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMEventData
}

// TeachEventData captures one completed teaching exchange.
type TeachEventData struct {
	SessionID    string
	Topic        string
	Exchange     int
	QualityScore float64
	Difficulty   int
	Correction   bool
}

// PurposeUsage aggregates LLM usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage per model for cost estimation.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMEvent records an LLM API call.
	AppendLLMEvent(ctx context.Context, data LLMEventData) error

	// AppendTeachStep records a completed teaching exchange.
	AppendTeachStep(ctx context.Context, data TeachEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by id, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// NopEventRepo discards everything. Used when the database is
// unavailable so the dialogue keeps working without an event log.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMEvent(context.Context, LLMEventData) error   { return nil }
func (NopEventRepo) AppendTeachStep(context.Context, TeachEventData) error { return nil }
func (NopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEvent, error) {
	return nil, nil
}
func (NopEventRepo) GetLLMEvent(context.Context, int) (*LLMEvent, error) { return nil, nil }
func (NopEventRepo) LLMUsageByPurpose(context.Context) ([]PurposeUsage, error) {
	return nil, nil
}
func (NopEventRepo) LLMUsageByModel(context.Context) ([]ModelUsage, error) { return nil, nil }
