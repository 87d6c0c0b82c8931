package swarm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flowstudio/flowswarm/agent"
	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/flowstudio/flowswarm/logging"
)

// UnknownTopologyError reports a swarm configured with an unrecognized
// topology. It surfaces at execute time.
type UnknownTopologyError struct {
	Topology core.Topology
}

// Error implements the error interface.
func (e *UnknownTopologyError) Error() string {
	return fmt.Sprintf("swarm: unknown topology: %q", e.Topology)
}

// Options configure a Swarm.
type Options struct {
	// Name identifies the swarm in stats and logs.
	Name string
	// Topology selects the execution strategy. Validated at execute time.
	Topology core.Topology
	// Store is handed to every agent the swarm creates. Nil disables
	// memory persistence.
	Store core.MemoryStore
	// Workflows persists workflow records when Execute is given a workflow
	// name. Nil disables workflow history.
	Workflows core.WorkflowStore
	// Logger receives swarm telemetry. Defaults to NoOp.
	Logger logging.Logger
	// MaxConcurrentThinks bounds mesh fan-out. Zero restores the original
	// unbounded behavior.
	MaxConcurrentThinks int
}

// Stats summarize a swarm and its agents.
type Stats struct {
	Name           string        `json:"name"`
	Topology       core.Topology `json:"topology"`
	AgentCount     int           `json:"agent_count"`
	Agents         []agent.Stats `json:"agents"`
	TasksCompleted int           `json:"tasks_completed"`
	Uptime         time.Duration `json:"uptime"`
}

// Swarm coordinates multiple agents working together on decomposed tasks.
type Swarm struct {
	opts      Options
	client    *completion.Client
	logger    *logging.FlowLogger
	createdAt time.Time

	mu        sync.Mutex
	agents    map[agent.Type]*agent.Agent
	order     []agent.Type
	completed int
}

// New creates an empty swarm over the given completion client.
func New(client *completion.Client, optFns ...func(o *Options)) *Swarm {
	opts := Options{
		Name:                "Flow Studio Swarm",
		Topology:            core.TopologyHierarchical,
		Logger:              logging.NoOpLogger{},
		MaxConcurrentThinks: 6,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Swarm{
		opts:      opts,
		client:    client,
		logger:    logging.NewFlowLogger(opts.Logger).WithComponent("swarm"),
		createdAt: time.Now(),
		agents:    make(map[agent.Type]*agent.Agent),
	}
}

// NewFlowStudioSwarm creates the standard swarm with all six agent types
// registered under hierarchical topology.
func NewFlowStudioSwarm(client *completion.Client, optFns ...func(o *Options)) *Swarm {
	s := New(client, append([]func(o *Options){func(o *Options) {
		o.Name = "Flow Studio Design Swarm"
		o.Topology = core.TopologyHierarchical
	}}, optFns...)...)

	for _, t := range agent.Types() {
		// All enum values are valid, so registration cannot fail here.
		_, _ = s.AddAgent(t)
	}
	return s
}

// AddAgent instantiates an agent of the given type and registers it. Adding
// a duplicate type overwrites the previous registration in place.
func (s *Swarm) AddAgent(t agent.Type) (*agent.Agent, error) {
	a, err := agent.New(t, s.client, func(o *agent.Options) {
		o.Store = s.opts.Store
		o.Logger = s.opts.Logger
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.agents[t]; !exists {
		s.order = append(s.order, t)
	}
	s.agents[t] = a
	s.logger.Info("Agent joined the swarm", "agent", a.Name(), "type", t.String())
	return a, nil
}

// Agent returns the registered agent of the given type, if any.
func (s *Swarm) Agent(t agent.Type) (*agent.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[t]
	return a, ok
}

// Topology returns the configured execution topology.
func (s *Swarm) Topology() core.Topology { return s.opts.Topology }

// Synthesize reconciles per-agent results toward the stated goal using the
// coordinator when one is registered; otherwise it passes the results
// through unchanged.
func (s *Swarm) Synthesize(ctx context.Context, results map[string]any, goal string) (any, error) {
	coord, ok := s.Agent(agent.TypeCoordinator)
	if !ok {
		return results, nil
	}

	res, err := coord.Think(ctx,
		fmt.Sprintf("Synthesize these agent results into a coherent output for: %s", goal),
		map[string]any{"results": results},
		func(o *agent.ThinkOptions) { o.Structured = true },
	)
	if err != nil {
		return nil, err
	}
	return res.Response, nil
}

// Stats returns a snapshot of the swarm and all registered agents.
func (s *Swarm) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents := make([]agent.Stats, 0, len(s.order))
	for _, t := range s.order {
		agents = append(agents, s.agents[t].Stats())
	}
	return Stats{
		Name:           s.opts.Name,
		Topology:       s.opts.Topology,
		AgentCount:     len(s.agents),
		Agents:         agents,
		TasksCompleted: s.completed,
		Uptime:         time.Since(s.createdAt),
	}
}

// typeNames returns the registered type keys in registration order.
func (s *Swarm) typeNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.order))
	for i, t := range s.order {
		names[i] = t.String()
	}
	return names
}

// resolve maps a plan's agent reference to a registered agent. Unknown or
// unregistered references report !ok; the caller skips them.
func (s *Swarm) resolve(ref string) (*agent.Agent, bool) {
	t, err := agent.ParseType(ref)
	if err != nil {
		return nil, false
	}
	return s.Agent(t)
}
