package completion

import (
	"context"
	"time"

	"github.com/flowstudio/flowswarm/core"
)

// Request captures one normalized completion call. It is immutable once
// issued; zero fields fall back to provider defaults.
type Request struct {
	Prompt      string  `json:"prompt"`
	System      string  `json:"system,omitempty"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int64   `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Result is the provider's reply to a single Request.
type Result struct {
	Text       string          `json:"text"`
	Usage      core.TokenUsage `json:"usage"`
	Model      string          `json:"model"`
	StopReason string          `json:"stop_reason"`
	Duration   time.Duration   `json:"duration"`
}

// StructuredResult pairs the raw completion result with the parsed value of
// its JSON payload.
type StructuredResult struct {
	Result
	Value any `json:"value"`
}

// Decode unmarshals the structured value into target via a JSON round-trip.
func (r *StructuredResult) Decode(target any) error {
	return roundTrip(r.Value, target)
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "anthropic", "openai", "mock", ...
}

// Provider is the minimal interface a vendor adapter must implement. All
// policy (retry, batching, structured output) lives in Client, keeping
// adapters a thin translation layer.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Result, error)
	Info() Info
}
