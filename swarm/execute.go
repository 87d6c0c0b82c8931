package swarm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/flowstudio/flowswarm/agent"
	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/google/uuid"
)

// meshComplexityThreshold is the adaptive cutover point: plans scoring above
// it route to mesh, at or below to hierarchical.
const meshComplexityThreshold = 0.7

// ExecuteOptions tune one Execute call.
type ExecuteOptions struct {
	// WorkflowName, when set, persists the resulting record under this name.
	WorkflowName string
	// Context is merged into every agent invocation's context.
	Context map[string]any
	// Structured requests JSON-mode output from every agent invocation.
	Structured bool
	// Temperature passes through to every completion request.
	Temperature float64
	// Subtasks overrides the trivial fallback plan used when no coordinator
	// is registered.
	Subtasks []core.Subtask
}

// Execute decomposes the task, runs the plan under the configured topology
// and wraps the per-agent results into a workflow record, persisting it when
// a workflow name is given.
//
// Any single agent failure aborts the whole call with no partial results.
func (s *Swarm) Execute(ctx context.Context, task string, optFns ...func(o *ExecuteOptions)) (*core.WorkflowRecord, error) {
	var opts ExecuteOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if !s.opts.Topology.Valid() {
		return nil, &UnknownTopologyError{Topology: s.opts.Topology}
	}

	start := time.Now()
	s.logger.Info("Swarm executing task", "task", task, "topology", string(s.opts.Topology))

	plan, err := s.decompose(ctx, task, &opts)
	if err != nil {
		s.logger.LogSwarmRun(string(s.opts.Topology), len(s.typeNames()), time.Since(start), err)
		return nil, err
	}

	var result map[string]any
	switch s.opts.Topology {
	case core.TopologyHierarchical:
		result, err = s.executeHierarchical(ctx, plan, &opts)
	case core.TopologyMesh:
		result, err = s.executeMesh(ctx, plan, &opts)
	case core.TopologyAdaptive:
		result, err = s.executeAdaptive(ctx, plan, &opts)
	}
	if err != nil {
		s.logger.LogSwarmRun(string(s.opts.Topology), len(s.typeNames()), time.Since(start), err)
		return nil, err
	}

	record := &core.WorkflowRecord{
		ID:             uuid.NewString(),
		Task:           task,
		Topology:       s.opts.Topology,
		AgentsInvolved: s.typeNames(),
		Result:         result,
		Duration:       time.Since(start),
		Timestamp:      time.Now(),
	}

	if opts.WorkflowName != "" && s.opts.Workflows != nil {
		if err := s.opts.Workflows.SaveResult(opts.WorkflowName, *record); err != nil {
			return nil, fmt.Errorf("swarm: save workflow result: %w", err)
		}
	}

	s.mu.Lock()
	s.completed++
	s.mu.Unlock()

	s.logger.LogSwarmRun(string(s.opts.Topology), len(record.AgentsInvolved), record.Duration, nil)
	return record, nil
}

// decompose produces the plan for a task. When a coordinator is registered
// it is asked, via structured output, to break the task down given the
// available agent types; otherwise the whole task is assigned to every
// registered agent.
func (s *Swarm) decompose(ctx context.Context, task string, opts *ExecuteOptions) (*core.DecompositionPlan, error) {
	coord, ok := s.Agent(agent.TypeCoordinator)
	if !ok {
		subtasks := opts.Subtasks
		if len(subtasks) == 0 {
			subtasks = []core.Subtask{{Task: task, Agents: s.typeNames()}}
		}
		return &core.DecompositionPlan{Task: task, Subtasks: subtasks}, nil
	}

	res, err := coord.Think(ctx,
		fmt.Sprintf("Decompose this task into subtasks for the swarm: %s", task),
		map[string]any{
			"available_agents": s.typeNames(),
			"topology":         string(s.opts.Topology),
		},
		func(o *agent.ThinkOptions) { o.Structured = true },
	)
	if err != nil {
		return nil, err
	}

	var plan core.DecompositionPlan
	if err := decodeValue(res.Response, &plan); err != nil || len(plan.Subtasks) == 0 {
		return nil, &completion.MalformedOutputError{
			Raw: fmt.Sprintf("%v", res.Response),
			Err: fmt.Errorf("coordinator produced no usable decomposition plan: %v", err),
		}
	}
	if plan.Task == "" {
		plan.Task = task
	}
	return &plan, nil
}

// executeHierarchical processes subtasks strictly in plan order; within a
// subtask, its agents run strictly in listed order and each invocation sees
// every previously collected result. Unregistered agent references are
// skipped with a warning.
func (s *Swarm) executeHierarchical(ctx context.Context, plan *core.DecompositionPlan, opts *ExecuteOptions) (map[string]any, error) {
	results := make(map[string]any)

	for _, subtask := range plan.Subtasks {
		for _, ref := range subtask.Agents {
			a, ok := s.resolve(ref)
			if !ok {
				s.logger.Warn("Agent not found in swarm, skipping", "agent", ref)
				continue
			}

			taskCtx := mergeContext(opts.Context, map[string]any{
				"swarm_context":    plan.Task,
				"previous_results": snapshot(results),
			})
			res, err := a.Think(ctx, subtask.Task, taskCtx, thinkOptions(opts))
			if err != nil {
				return nil, fmt.Errorf("swarm: hierarchical execution failed at agent %s: %w", a.Name(), err)
			}
			results[a.Type().String()] = res.Response
		}
	}
	return results, nil
}

// meshSlot holds one settled invocation outcome, keeping per-slot results so
// flattening stays deterministic (subtask order, then listed agent order).
type meshSlot struct {
	key   string
	value any
	err   error
	done  bool
}

// executeMesh runs every subtask's agents concurrently; no invocation sees
// another's result. Fan-out is bounded by MaxConcurrentThinks (zero means
// unbounded). After all settle, outcomes flatten into one mapping keyed by
// agent type, last writer wins on collisions across subtasks; the first
// error in slot order aborts the call.
func (s *Swarm) executeMesh(ctx context.Context, plan *core.DecompositionPlan, opts *ExecuteOptions) (map[string]any, error) {
	type invocation struct {
		a    *agent.Agent
		task string
	}

	var invocations []invocation
	for _, subtask := range plan.Subtasks {
		for _, ref := range subtask.Agents {
			a, ok := s.resolve(ref)
			if !ok {
				s.logger.Warn("Agent not found in swarm, skipping", "agent", ref)
				continue
			}
			invocations = append(invocations, invocation{a: a, task: subtask.Task})
		}
	}

	var sem chan struct{}
	if s.opts.MaxConcurrentThinks > 0 {
		sem = make(chan struct{}, s.opts.MaxConcurrentThinks)
	}

	slots := make([]meshSlot, len(invocations))
	var wg sync.WaitGroup
	for i, inv := range invocations {
		wg.Add(1)
		go func(i int, inv invocation) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			taskCtx := mergeContext(opts.Context, map[string]any{
				"swarm_context": plan.Task,
				"topology":      string(core.TopologyMesh),
			})
			res, err := inv.a.Think(ctx, inv.task, taskCtx, thinkOptions(opts))
			if err != nil {
				slots[i] = meshSlot{err: fmt.Errorf("swarm: mesh execution failed for agent %s: %w", inv.a.Name(), err), done: true}
				return
			}
			slots[i] = meshSlot{key: inv.a.Type().String(), value: res.Response, done: true}
		}(i, inv)
	}
	wg.Wait()

	results := make(map[string]any, len(slots))
	for _, slot := range slots {
		if !slot.done {
			continue
		}
		if slot.err != nil {
			return nil, slot.err
		}
		results[slot.key] = slot.value
	}
	return results, nil
}

// executeAdaptive scores the plan's complexity and routes high-complexity
// plans to mesh, everything else to hierarchical.
func (s *Swarm) executeAdaptive(ctx context.Context, plan *core.DecompositionPlan, opts *ExecuteOptions) (map[string]any, error) {
	score := s.complexity(plan)
	if score > meshComplexityThreshold {
		s.logger.Info("High complexity detected, using mesh topology", "complexity", score)
		return s.executeMesh(ctx, plan, opts)
	}
	s.logger.Info("Standard complexity, using hierarchical topology", "complexity", score)
	return s.executeHierarchical(ctx, plan, opts)
}

// complexity is a static heuristic in [0, 1]: more subtasks and more
// registered agents score higher.
func (s *Swarm) complexity(plan *core.DecompositionPlan) float64 {
	subtasks := len(plan.Subtasks)
	if subtasks == 0 {
		subtasks = 1
	}

	s.mu.Lock()
	agents := len(s.agents)
	s.mu.Unlock()

	score := float64(subtasks*agents) / 20
	if score > 1 {
		return 1
	}
	return score
}

func thinkOptions(opts *ExecuteOptions) func(o *agent.ThinkOptions) {
	return func(o *agent.ThinkOptions) {
		o.Structured = opts.Structured
		o.Temperature = opts.Temperature
	}
}

// decodeValue converts an already-parsed JSON value into a concrete type.
func decodeValue(value, target any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

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

// snapshot shallow-copies the results collected so far, so each invocation's
// context is stable even as later results accumulate.
func snapshot(results map[string]any) map[string]any {
	copied := make(map[string]any, len(results))
	for k, v := range results {
		copied[k] = v
	}
	return copied
}
