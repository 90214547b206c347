package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "validate-test",
	Description: "test schema",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict":    map[string]any{"type": "boolean"},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []any{"verdict"},
	},
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage("anything at all")); err != nil {
		t.Errorf("nil schema must validate: %v", err)
	}
}

func TestValidateResponseValid(t *testing.T) {
	raw := json.RawMessage(`{"verdict":true,"confidence":0.8}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
}

func TestValidateResponseMissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"confidence":0.8}`)
	err := validateResponse(testSchema, raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if string(invalid.Content) != string(raw) {
		t.Error("error must carry the offending content")
	}
}

func TestValidateResponseOutOfRange(t *testing.T) {
	raw := json.RawMessage(`{"verdict":true,"confidence":1.5}`)
	var invalid *ErrInvalidResponse
	if err := validateResponse(testSchema, raw); !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponseMalformedJSON(t *testing.T) {
	var invalid *ErrInvalidResponse
	if err := validateResponse(testSchema, json.RawMessage(`{not json`)); !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestSchemaCompileCached(t *testing.T) {
	// Two validations against the same named schema reuse the compiled
	// form; this only needs to not error.
	raw := json.RawMessage(`{"verdict":false}`)
	for i := 0; i < 2; i++ {
		if err := validateResponse(testSchema, raw); err != nil {
			t.Fatalf("validation %d failed: %v", i+1, err)
		}
	}
}
