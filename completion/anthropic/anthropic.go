// Package anthropic provides a completion.Provider backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
)

// Options configure the Anthropic provider (API key, model id, max tokens,
// temperature). Extend via functional options to preserve stability.
type Options struct {
	// APIKey overrides the ANTHROPIC_API_KEY environment variable.
	APIKey      string
	Model       anthropic.Model
	MaxTokens   int64
	Temperature float64
}

// Provider wraps the Anthropic Messages API behind completion.Provider.
type Provider struct {
	client *anthropic.Client
	opts   Options
}

// New creates a Provider using the official client. A missing API key is a
// fail-fast configuration error; no network attempt is made.
func New(optFns ...func(o *Options)) (*Provider, error) {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens:   4096,
		Temperature: 1.0,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	key := opts.APIKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key == "" {
		return nil, &completion.ConfigurationError{Reason: "ANTHROPIC_API_KEY is not set"}
	}

	client := anthropic.NewClient(option.WithAPIKey(key))
	return &Provider{client: &client, opts: opts}, nil
}

// NewFromClient creates a Provider from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens:   4096,
		Temperature: 1.0,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Complete implements completion.Provider.
func (p *Provider) Complete(ctx context.Context, req completion.Request) (*completion.Result, error) {
	model := p.opts.Model
	if req.Model != "" {
		model = anthropic.Model(req.Model)
	}
	maxTokens := p.opts.MaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	temperature := p.opts.Temperature
	if req.Temperature > 0 {
		temperature = req.Temperature
	}

	params := anthropic.MessageNewParams{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	start := time.Now()
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &completion.TransportError{Provider: "anthropic", Err: err}
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	stopReason := "stop"
	if resp.StopReason != "" {
		stopReason = string(resp.StopReason)
	}

	return &completion.Result{
		Text: sb.String(),
		Usage: core.TokenUsage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
		Model:      string(resp.Model),
		StopReason: stopReason,
		Duration:   time.Since(start),
	}, nil
}

// Info implements completion.Provider.
func (p *Provider) Info() completion.Info {
	return completion.Info{Name: string(p.opts.Model), Provider: "anthropic"}
}
