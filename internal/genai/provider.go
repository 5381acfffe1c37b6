package genai

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the minimal LLM abstraction the content generator needs:
// one prompt in, one completion out. When a schema is set the provider
// uses its native structured-output mechanism and the returned bytes
// are JSON conforming to it; otherwise the completion is plain text.
type Provider interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)

	// ModelID returns the model identifier this provider is configured
	// to use, for logging.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when non-nil, is the JSON schema the output must satisfy.
	Schema map[string]any

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0.
	Temperature float64
}

// ErrTruncated indicates the completion stopped at the token cap and
// cannot be trusted to be complete JSON.
type ErrTruncated struct {
	Raw json.RawMessage
}

func (e *ErrTruncated) Error() string {
	return "completion truncated at max tokens"
}

// ErrBadCompletion indicates the model returned output that failed
// parsing or schema validation.
type ErrBadCompletion struct {
	Raw json.RawMessage
	Err error
}

func (e *ErrBadCompletion) Error() string {
	return fmt.Sprintf("bad completion: %v", e.Err)
}

func (e *ErrBadCompletion) Unwrap() error { return e.Err }
