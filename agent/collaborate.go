package agent

import (
	"context"
	"fmt"
	"time"
)

// Collaboration is the merged outcome of a two-agent pipeline.
type Collaboration struct {
	Agents    []string       `json:"agents"`
	Task      string         `json:"task"`
	Results   map[string]any `json:"results"`
	Timestamp time.Time      `json:"timestamp"`
}

// CollaborateWith runs a sequential two-step pipeline: this agent thinks
// first, then other thinks on the same task with this agent's response
// injected into its context as previous work. This is not true parallel
// collaboration.
func (a *Agent) CollaborateWith(ctx context.Context, other *Agent, task string, taskCtx map[string]any) (*Collaboration, error) {
	a.logger.Info("Agents collaborating", "first", a.Name(), "second", other.Name(), "task", task)

	mine, err := a.Think(ctx, task, mergeContext(taskCtx, map[string]any{
		"collaboration": fmt.Sprintf("Working with %s", other.Name()),
	}))
	if err != nil {
		return nil, err
	}

	theirs, err := other.Think(ctx, task, mergeContext(taskCtx, map[string]any{
		"collaboration": fmt.Sprintf("Building on %s's work", a.Name()),
		"previous_work": mine.Response,
	}))
	if err != nil {
		return nil, err
	}

	return &Collaboration{
		Agents: []string{a.Name(), other.Name()},
		Task:   task,
		Results: map[string]any{
			a.Name():     mine.Response,
			other.Name(): theirs.Response,
		},
		Timestamp: time.Now(),
	}, nil
}

// Refine asks the agent to review previous work against the given criteria.
// It is a thin wrapper over Think with a fixed task template.
func (a *Agent) Refine(ctx context.Context, previousWork any, criteria string) (*TaskResult, error) {
	task := fmt.Sprintf("Review and refine this work based on the following criteria: %s", criteria)
	return a.Think(ctx, task, map[string]any{
		"previous_work": previousWork,
		"mode":          "refinement",
	})
}

// mergeContext overlays extra onto base without mutating either.
func mergeContext(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
