package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/flowstudio/flowswarm/logging"
)

// taskDigestLen bounds how much of a remembered task surfaces in prompts.
const taskDigestLen = 100

// recallDepth is how many recent window entries Think folds into the prompt.
const recallDepth = 3

// Recollection is one entry of an agent's in-process memory window.
type Recollection struct {
	Task      string    `json:"task"`
	Response  any       `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// TaskResult is the outcome of one Think call.
type TaskResult struct {
	Agent     string          `json:"agent"`
	Task      string          `json:"task"`
	Context   map[string]any  `json:"context,omitempty"`
	Response  any             `json:"response"`
	Timestamp time.Time       `json:"timestamp"`
	Duration  time.Duration   `json:"duration"`
	Usage     core.TokenUsage `json:"usage"`
}

// Stats summarize one agent's in-process activity.
type Stats struct {
	Name         string        `json:"name"`
	Type         Type          `json:"type"`
	Role         string        `json:"role"`
	TaskCount    int           `json:"task_count"`
	MemorySize   int           `json:"memory_size"`
	Uptime       time.Duration `json:"uptime"`
	Capabilities int           `json:"capabilities"`
}

// Options configure an Agent beyond its identity.
type Options struct {
	// Store persists task history. Nil disables persistence.
	Store core.MemoryStore
	// Logger receives task telemetry. Defaults to NoOp.
	Logger logging.Logger
}

// Agent is a named, role-configured worker. It is owned by the swarm that
// created it (or used standalone) and is safe for concurrent Think calls,
// though its memory window then interleaves in completion order.
type Agent struct {
	typ     Type
	profile Profile
	client  *completion.Client
	store   core.MemoryStore
	logger  *logging.FlowLogger

	mu        sync.Mutex
	window    []Recollection
	taskCount int
	createdAt time.Time
}

// New constructs an agent of the given type. Unknown types fail with
// *UnknownAgentTypeError.
func New(t Type, client *completion.Client, optFns ...func(o *Options)) (*Agent, error) {
	if !t.Valid() {
		return nil, &UnknownAgentTypeError{Value: string(t)}
	}

	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Agent{
		typ:       t,
		profile:   t.Profile(),
		client:    client,
		store:     opts.Store,
		logger:    logging.NewFlowLogger(opts.Logger).WithComponent("agent"),
		createdAt: time.Now(),
	}, nil
}

// Name returns the agent's display name (e.g. "Stylist"), which is also its
// memory store key.
func (a *Agent) Name() string { return a.profile.Name }

// Type returns the agent's kind.
func (a *Agent) Type() Type { return a.typ }

// Profile returns the agent's identity record.
func (a *Agent) Profile() Profile { return a.profile }

// ThinkOptions tune a single Think call.
type ThinkOptions struct {
	// Structured requests JSON-mode output: the reply is parsed and the
	// result's Response holds the parsed value instead of raw text.
	Structured bool
	// DisablePersistence skips the memory store write for this call.
	DisablePersistence bool
	// Model, MaxTokens and Temperature pass through to the completion
	// request; zero values defer to provider defaults.
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Think executes one task: it builds a prompt embedding the task, the
// serialized context and a digest of recent work, dispatches it through the
// completion client under the agent's identity, records the exchange in the
// in-process window and the memory store, and returns the result.
//
// Think performs no retry of its own; failures from the completion client
// propagate to the caller after being logged.
func (a *Agent) Think(ctx context.Context, task string, taskCtx map[string]any, optFns ...func(o *ThinkOptions)) (*TaskResult, error) {
	var opts ThinkOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	a.mu.Lock()
	a.taskCount++
	recent := a.recentTasksLocked()
	a.mu.Unlock()

	prompt := buildPrompt(task, taskCtx, recent)
	reqOpt := func(o *completion.RequestOptions) {
		o.System = a.buildSystemPrompt()
		o.Model = opts.Model
		o.MaxTokens = opts.MaxTokens
		o.Temperature = opts.Temperature
	}

	var (
		response any
		usage    core.TokenUsage
	)
	if opts.Structured {
		res, err := a.client.CompleteStructured(ctx, prompt, reqOpt)
		if err != nil {
			a.logger.LogAgentTask(a.Name(), task, time.Since(start), err)
			return nil, err
		}
		response = res.Value
		usage = res.Usage
	} else {
		res, err := a.client.Complete(ctx, prompt, reqOpt)
		if err != nil {
			a.logger.LogAgentTask(a.Name(), task, time.Since(start), err)
			return nil, err
		}
		response = res.Text
		usage = res.Usage
	}

	result := &TaskResult{
		Agent:     a.Name(),
		Task:      task,
		Context:   taskCtx,
		Response:  response,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
		Usage:     usage,
	}

	a.mu.Lock()
	a.window = append(a.window, Recollection{Task: task, Response: response, Timestamp: result.Timestamp})
	a.mu.Unlock()

	if a.store != nil && !opts.DisablePersistence {
		entry := core.MemoryEntry{
			Task:     task,
			Response: response,
			Duration: result.Duration,
			Usage:    &usage,
		}
		if err := a.store.Save(a.Name(), entry); err != nil {
			return nil, fmt.Errorf("agent %s: persist memory: %w", a.Name(), err)
		}
	}

	a.logger.LogAgentTask(a.Name(), task, result.Duration, nil)
	return result, nil
}

// LoadHistory replaces the in-process memory window with up to limit most
// recent entries from the memory store, warm-starting contextual awareness
// across process restarts.
func (a *Agent) LoadHistory(limit int) error {
	if a.store == nil {
		return nil
	}
	entries, err := a.store.Load(a.Name(), limit)
	if err != nil {
		return err
	}

	window := make([]Recollection, len(entries))
	for i, e := range entries {
		window[i] = Recollection{Task: e.Task, Response: e.Response, Timestamp: e.Timestamp}
	}

	a.mu.Lock()
	a.window = window
	a.mu.Unlock()
	a.logger.Info("Loaded agent history", "agent", a.Name(), "count", len(window))
	return nil
}

// ClearMemory empties the in-process window only; persisted history in the
// memory store is untouched.
func (a *Agent) ClearMemory() {
	a.mu.Lock()
	a.window = nil
	a.mu.Unlock()
}

// Stats returns a snapshot of the agent's activity counters.
func (a *Agent) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{
		Name:         a.profile.Name,
		Type:         a.typ,
		Role:         a.profile.Role,
		TaskCount:    a.taskCount,
		MemorySize:   len(a.window),
		Uptime:       time.Since(a.createdAt),
		Capabilities: len(a.profile.Capabilities),
	}
}

func (a *Agent) recentTasksLocked() []string {
	n := len(a.window)
	lo := n - recallDepth
	if lo < 0 {
		lo = 0
	}
	tasks := make([]string, 0, n-lo)
	for _, r := range a.window[lo:n] {
		tasks = append(tasks, r.Task)
	}
	return tasks
}

// buildPrompt assembles the task, the serialized context and a digest of
// recent work into one prompt.
func buildPrompt(task string, taskCtx map[string]any, recent []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Task: %s\n\n", task)

	if len(taskCtx) > 0 {
		raw, err := json.MarshalIndent(taskCtx, "", "  ")
		if err == nil {
			fmt.Fprintf(&sb, "Context:\n%s\n\n", raw)
		}
	}

	if len(recent) > 0 {
		sb.WriteString("Recent Experience:\n")
		for i, t := range recent {
			fmt.Fprintf(&sb, "%d. %s...\n", i+1, truncate(t, taskDigestLen))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// buildSystemPrompt renders the agent's identity and its fixed quality
// commitments into the system prompt.
func (a *Agent) buildSystemPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, a %s in the Flow Studio design system.\n\n", a.profile.Name, a.profile.Role)
	fmt.Fprintf(&sb, "Your Role: %s\n\n", a.profile.Role)
	sb.WriteString("Your Capabilities:\n")
	for _, cap := range a.profile.Capabilities {
		fmt.Fprintf(&sb, "- %s\n", cap)
	}
	fmt.Fprintf(&sb, "\nPersonality: %s\n\n", a.profile.Personality)
	sb.WriteString(`Your task is to leverage your expertise to provide the highest quality output. You understand design systems, modern web aesthetics, accessibility, and current design trends. You always consider:
- Brand alignment and consistency
- WCAG AAA accessibility standards
- Modern design trends (glassmorphism, kinetic typography, perceptual color)
- Performance and maintainability
- User experience excellence

Approach every task systematically and provide detailed, actionable output.`)
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
