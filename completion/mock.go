package completion

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flowstudio/flowswarm/core"
)

// MockCall records one invocation observed by a MockProvider, including its
// wall-clock bounds so tests can assert on ordering and overlap.
type MockCall struct {
	Prompt string
	System string
	Start  time.Time
	End    time.Time
}

// MockProvider is a lightweight in-memory Provider useful for tests and
// offline development. Responses resolve in order of precedence:
//
//  1. a queued failure (consumed one per call)
//  2. the Respond hook, if set
//  3. a registered response whose key is a substring of the prompt
//  4. a generic "Mock response to: <prompt>" fallback
//
// Substring matching mirrors how real prompts embed the task inside a larger
// template; keys are scanned in sorted order for determinism.
type MockProvider struct {
	mu          sync.Mutex
	info        Info
	responses   map[string]string
	failures    []error
	calls       []MockCall
	inFlight    int
	maxInFlight int

	// Respond, when set, computes the reply for every call.
	Respond func(req Request) (string, error)
	// Latency is slept inside each call to make overlap observable.
	Latency time.Duration
}

// NewMockProvider constructs an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		info:      Info{Name: "mock-model", Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a canned completion returned for any prompt
// containing key.
func (m *MockProvider) AddResponse(key, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key] = response
}

// FailNext queues errors returned by upcoming calls, one each, before any
// canned response is consulted.
func (m *MockProvider) FailNext(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// Calls returns a copy of all recorded invocations in arrival order.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// MaxInFlight reports the highest number of concurrently executing calls
// observed so far.
func (m *MockProvider) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Complete implements Provider.
func (m *MockProvider) Complete(ctx context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	idx := len(m.calls)
	m.calls = append(m.calls, MockCall{Prompt: req.Prompt, System: req.System, Start: time.Now()})
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	var failure error
	if len(m.failures) > 0 {
		failure = m.failures[0]
		m.failures = m.failures[1:]
	}
	latency := m.Latency
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-ctx.Done():
			m.finish(idx)
			return nil, ctx.Err()
		case <-time.After(latency):
		}
	}

	defer m.finish(idx)

	if failure != nil {
		return nil, failure
	}

	text, err := m.resolve(req)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:       text,
		Usage:      core.TokenUsage{InputTokens: len(req.Prompt) / 4, OutputTokens: len(text) / 4},
		Model:      m.info.Name,
		StopReason: "end_turn",
	}, nil
}

func (m *MockProvider) finish(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
	m.calls[idx].End = time.Now()
}

func (m *MockProvider) resolve(req Request) (string, error) {
	if m.Respond != nil {
		return m.Respond(req)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if text, ok := m.responses[req.Prompt]; ok {
		return text, nil
	}
	keys := make([]string, 0, len(m.responses))
	for k := range m.responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(req.Prompt, k) {
			return m.responses[k], nil
		}
	}
	return "Mock response to: " + req.Prompt, nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }
