// Package openai provides a completion.Provider backed by the OpenAI Chat
// Completions API. It adapts FlowSwarm's normalized Request/Result structures
// into the SDK's message format and back.
package openai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configure the OpenAI provider. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal.
type Options struct {
	// APIKey overrides the OPENAI_API_KEY environment variable.
	APIKey              string
	Model               string
	MaxCompletionTokens int64
	Temperature         float64
}

// Provider wraps the OpenAI Chat Completions API behind completion.Provider.
type Provider struct {
	client *openai.Client
	opts   Options
}

// New creates a Provider using the official client. A missing API key is a
// fail-fast configuration error; no network attempt is made.
func New(optFns ...func(o *Options)) (*Provider, error) {
	opts := defaultOptions(optFns)

	key := opts.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, &completion.ConfigurationError{Reason: "OPENAI_API_KEY is not set"}
	}

	client := openai.NewClient(option.WithAPIKey(key))
	return &Provider{client: &client, opts: opts}, nil
}

// NewFromClient creates a Provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	return &Provider{client: client, opts: defaultOptions(optFns)}
}

func defaultOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		MaxCompletionTokens: 4096,
		Temperature:         1.0,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Complete implements completion.Provider.
func (p *Provider) Complete(ctx context.Context, req completion.Request) (*completion.Result, error) {
	model := p.opts.Model
	if req.Model != "" {
		model = req.Model
	}
	maxTokens := p.opts.MaxCompletionTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	temperature := p.opts.Temperature
	if req.Temperature > 0 {
		temperature = req.Temperature
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               model,
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxTokens),
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &completion.TransportError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &completion.TransportError{Provider: "openai", Err: fmt.Errorf("empty choices in response")}
	}

	choice := resp.Choices[0]
	stopReason := "stop"
	if choice.FinishReason != "" {
		stopReason = choice.FinishReason
	}

	return &completion.Result{
		Text: choice.Message.Content,
		Usage: core.TokenUsage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		Model:      resp.Model,
		StopReason: stopReason,
		Duration:   time.Since(start),
	}, nil
}

// Info implements completion.Provider.
func (p *Provider) Info() completion.Info {
	return completion.Info{Name: p.opts.Model, Provider: "openai"}
}
