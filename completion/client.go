package completion

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/flowstudio/flowswarm/logging"
)

const jsonDirective = "CRITICAL: You must respond with valid JSON only. No markdown, no explanations, just pure JSON."

// Options configure a Client's retry and batching policies.
type Options struct {
	// MaxRetries is the total number of attempts CompleteWithRetry makes.
	MaxRetries int
	// RetryDelay is the backoff unit; the wait before attempt n+1 is
	// RetryDelay * n (linear, no jitter).
	RetryDelay time.Duration
	// MaxConcurrent is the window size for CompleteBatch.
	MaxConcurrent int
	// BatchPause is the fixed pause inserted between batch windows to
	// respect provider rate limits.
	BatchPause time.Duration
	// Logger receives call telemetry. Defaults to NoOp.
	Logger logging.Logger
}

// RequestOptions tune a single call. Zero fields defer to the provider's
// configured defaults.
type RequestOptions struct {
	System      string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Client wraps a Provider with the retry, batching and structured-output
// policies shared by all agents. A Client is safe for concurrent use.
type Client struct {
	provider Provider
	opts     Options
	logger   *logging.FlowLogger
}

// NewClient builds a Client over the given provider.
func NewClient(provider Provider, optFns ...func(o *Options)) *Client {
	opts := Options{
		MaxRetries:    3,
		RetryDelay:    time.Second,
		MaxConcurrent: 3,
		BatchPause:    500 * time.Millisecond,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		provider: provider,
		opts:     opts,
		logger:   logging.NewFlowLogger(opts.Logger).WithComponent("completion"),
	}
}

// Complete sends a single prompt and returns the provider's reply.
func (c *Client) Complete(ctx context.Context, prompt string, optFns ...func(o *RequestOptions)) (*Result, error) {
	var ro RequestOptions
	for _, fn := range optFns {
		fn(&ro)
	}

	req := Request{
		Prompt:      prompt,
		System:      ro.System,
		Model:       ro.Model,
		MaxTokens:   ro.MaxTokens,
		Temperature: ro.Temperature,
	}

	start := time.Now()
	res, err := c.provider.Complete(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.LogModelCall(req.Model, 0, elapsed, err)
		return nil, err
	}
	if res.Duration == 0 {
		res.Duration = elapsed
	}
	c.logger.LogModelCall(res.Model, res.Usage.Total(), res.Duration, nil)
	return res, nil
}

// CompleteStructured appends an explicit JSON-only directive to the prompt,
// strips a fenced code-block wrapper from the reply if present, and parses
// the remainder. Parse failures surface as *MalformedOutputError carrying
// the raw text; they are never retried here, the caller decides.
func (c *Client) CompleteStructured(ctx context.Context, prompt string, optFns ...func(o *RequestOptions)) (*StructuredResult, error) {
	res, err := c.Complete(ctx, prompt+"\n\n"+jsonDirective, optFns...)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal([]byte(stripFence(res.Text)), &value); err != nil {
		return nil, &MalformedOutputError{Raw: res.Text, Err: err}
	}
	return &StructuredResult{Result: *res, Value: value}, nil
}

// CompleteWithRetry retries Complete up to MaxRetries times on any failure,
// sleeping RetryDelay*attempt between attempts. The final attempt's error
// propagates unchanged. No distinction is made between transport failures
// and other errors.
func (c *Client) CompleteWithRetry(ctx context.Context, prompt string, optFns ...func(o *RequestOptions)) (*Result, error) {
	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		res, err := c.Complete(ctx, prompt, optFns...)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if attempt == c.opts.MaxRetries {
			break
		}
		c.logger.Warn("Completion call failed, retrying",
			"attempt", attempt, "max_retries", c.opts.MaxRetries, "error", err.Error())
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.opts.RetryDelay * time.Duration(attempt)):
		}
	}
	return nil, lastErr
}

// CompleteBatch processes prompts in windows of MaxConcurrent. Each window's
// calls run concurrently and the whole window completes before the next one
// starts, with a fixed BatchPause between windows. Results preserve input
// order; the first failure aborts the batch.
func (c *Client) CompleteBatch(ctx context.Context, prompts []string, optFns ...func(o *RequestOptions)) ([]*Result, error) {
	window := c.opts.MaxConcurrent
	if window < 1 {
		window = 1
	}

	results := make([]*Result, len(prompts))
	for lo := 0; lo < len(prompts); lo += window {
		hi := min(lo+window, len(prompts))

		var wg sync.WaitGroup
		errCh := make(chan error, hi-lo)
		for i := lo; i < hi; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				res, err := c.Complete(ctx, prompts[i], optFns...)
				if err != nil {
					errCh <- err
					return
				}
				results[i] = res
			}(i)
		}
		wg.Wait()
		close(errCh)
		if err := <-errCh; err != nil {
			return nil, err
		}

		if hi < len(prompts) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.opts.BatchPause):
			}
		}
	}
	return results, nil
}

// Stream is declared for API completeness but not implemented.
func (c *Client) Stream(_ context.Context, _ string, _ func(chunk string) error, _ ...func(o *RequestOptions)) error {
	return ErrStreamingNotSupported
}

// Provider returns the underlying provider, useful for introspection.
func (c *Client) Provider() Provider { return c.provider }

// stripFence removes a leading ```json or ``` fence line and the trailing
// ``` line when the text starts with a fence.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.TrimPrefix(text, "```json")
	case strings.HasPrefix(text, "```"):
		text = strings.TrimPrefix(text, "```")
	default:
		return text
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// roundTrip converts an already-parsed JSON value into a concrete Go type.
func roundTrip(value, target any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
