package swarm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowstudio/flowswarm/agent"
	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/flowstudio/flowswarm/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addAgents(t *testing.T, s *Swarm, types ...agent.Type) {
	t.Helper()
	for _, typ := range types {
		_, err := s.AddAgent(typ)
		require.NoError(t, err)
	}
}

func TestExecute_UnknownTopology(t *testing.T) {
	s := newTestSwarm(t, completion.NewMockProvider(), func(o *Options) {
		o.Topology = core.Topology("ring")
	})

	_, err := s.Execute(context.Background(), "anything")

	var unknown *UnknownTopologyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, core.Topology("ring"), unknown.Topology)
}

func TestExecute_Hierarchical_ChainsPreviousResults(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.AddResponse("build the page", "agent output")
	s := newTestSwarm(t, provider)
	addAgents(t, s, agent.TypeStylist, agent.TypeBuilder)

	record, err := s.Execute(context.Background(), "build the page")

	require.NoError(t, err)
	assert.Equal(t, "build the page", record.Task)
	assert.Equal(t, []string{"stylist", "builder"}, record.AgentsInvolved)
	assert.Equal(t, "agent output", record.Result["stylist"])
	assert.Equal(t, "agent output", record.Result["builder"])

	calls := provider.Calls()
	require.Len(t, calls, 2)
	// The first agent sees no prior results; the second sees the first's.
	assert.NotContains(t, calls[0].Prompt, `"stylist"`)
	assert.Contains(t, calls[1].Prompt, "previous_results")
	assert.Contains(t, calls[1].Prompt, `"stylist"`)
}

func TestExecute_Hierarchical_SkipsUnregisteredAgents(t *testing.T) {
	provider := completion.NewMockProvider()
	s := newTestSwarm(t, provider)
	addAgents(t, s, agent.TypeStylist)

	record, err := s.Execute(context.Background(), "style it", func(o *ExecuteOptions) {
		o.Subtasks = []core.Subtask{{Task: "style it", Agents: []string{"stylist", "builder", "z"}}}
	})

	require.NoError(t, err)
	assert.Len(t, record.Result, 1)
	assert.Contains(t, record.Result, "stylist")
	assert.Len(t, provider.Calls(), 1)
}

func TestExecute_Hierarchical_AgentFailureAborts(t *testing.T) {
	provider := completion.NewMockProvider()
	boom := errors.New("provider down")
	provider.FailNext(boom)
	s := newTestSwarm(t, provider)
	addAgents(t, s, agent.TypeStylist, agent.TypeBuilder)

	record, err := s.Execute(context.Background(), "build the page")

	require.ErrorIs(t, err, boom)
	assert.Nil(t, record)
	assert.ErrorContains(t, err, "hierarchical execution failed at agent Stylist")
	// The failure stops the chain before the second agent runs.
	assert.Len(t, provider.Calls(), 1)
}

func TestExecute_Mesh_RunsConcurrently(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.Latency = 20 * time.Millisecond
	s := newTestSwarm(t, provider, func(o *Options) {
		o.Topology = core.TopologyMesh
	})
	addAgents(t, s, agent.TypeStylist, agent.TypeBuilder, agent.TypeCurator)

	start := time.Now()
	record, err := s.Execute(context.Background(), "explore directions")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Len(t, record.Result, 3)
	assert.GreaterOrEqual(t, provider.MaxInFlight(), 2)
	// Three 20ms calls overlapping should finish well under 60ms.
	assert.Less(t, elapsed, 55*time.Millisecond)
}

func TestExecute_Mesh_NoCrossTalk(t *testing.T) {
	provider := completion.NewMockProvider()
	s := newTestSwarm(t, provider, func(o *Options) {
		o.Topology = core.TopologyMesh
	})
	addAgents(t, s, agent.TypeStylist, agent.TypeBuilder)

	_, err := s.Execute(context.Background(), "explore directions")

	require.NoError(t, err)
	for _, call := range provider.Calls() {
		assert.NotContains(t, call.Prompt, "previous_results")
		assert.Contains(t, call.Prompt, `"topology": "mesh"`)
	}
}

func TestExecute_Mesh_BoundedFanOut(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.Latency = 10 * time.Millisecond
	s := newTestSwarm(t, provider, func(o *Options) {
		o.Topology = core.TopologyMesh
		o.MaxConcurrentThinks = 2
	})
	addAgents(t, s, agent.TypeStylist, agent.TypeBuilder, agent.TypeCurator, agent.TypeStrategist)

	_, err := s.Execute(context.Background(), "explore directions")

	require.NoError(t, err)
	assert.LessOrEqual(t, provider.MaxInFlight(), 2)
}

func TestExecute_Mesh_AgentFailureAborts(t *testing.T) {
	provider := completion.NewMockProvider()
	boom := errors.New("provider down")
	provider.FailNext(boom)
	s := newTestSwarm(t, provider, func(o *Options) {
		o.Topology = core.TopologyMesh
	})
	addAgents(t, s, agent.TypeStylist, agent.TypeBuilder)

	record, err := s.Execute(context.Background(), "explore directions")

	require.ErrorIs(t, err, boom)
	assert.Nil(t, record)
	assert.ErrorContains(t, err, "mesh execution failed")
}

func TestExecute_Adaptive_HighComplexityUsesMesh(t *testing.T) {
	provider := completion.NewMockProvider()
	s := newTestSwarm(t, provider, func(o *Options) {
		o.Topology = core.TopologyAdaptive
	})
	// 5 agents x 3 subtasks = 0.75 complexity, above the mesh threshold.
	addAgents(t, s, agent.TypeAnalyst, agent.TypeStrategist, agent.TypeStylist, agent.TypeBuilder, agent.TypeCurator)

	subtasks := []core.Subtask{
		{Task: "a", Agents: []string{"stylist"}},
		{Task: "b", Agents: []string{"builder"}},
		{Task: "c", Agents: []string{"curator"}},
	}
	_, err := s.Execute(context.Background(), "big job", func(o *ExecuteOptions) {
		o.Subtasks = subtasks
	})

	require.NoError(t, err)
	for _, call := range provider.Calls() {
		assert.Contains(t, call.Prompt, `"topology": "mesh"`)
	}
}

func TestExecute_Adaptive_StandardComplexityUsesHierarchical(t *testing.T) {
	provider := completion.NewMockProvider()
	s := newTestSwarm(t, provider, func(o *Options) {
		o.Topology = core.TopologyAdaptive
	})
	// 5 agents x 2 subtasks = 0.5 complexity, at or below the threshold.
	addAgents(t, s, agent.TypeAnalyst, agent.TypeStrategist, agent.TypeStylist, agent.TypeBuilder, agent.TypeCurator)

	subtasks := []core.Subtask{
		{Task: "a", Agents: []string{"stylist"}},
		{Task: "b", Agents: []string{"builder"}},
	}
	_, err := s.Execute(context.Background(), "small job", func(o *ExecuteOptions) {
		o.Subtasks = subtasks
	})

	require.NoError(t, err)
	for _, call := range provider.Calls() {
		assert.NotContains(t, call.Prompt, `"topology": "mesh"`)
	}
}

func TestExecute_CoordinatorDecomposition(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.AddResponse("Decompose this task",
		`{"task": "build a design system", "subtasks": [{"task": "generate tokens", "agents": ["stylist"]}]}`)
	provider.AddResponse("generate tokens", "token output")
	s := newTestSwarm(t, provider)
	addAgents(t, s, agent.TypeCoordinator, agent.TypeStylist)

	record, err := s.Execute(context.Background(), "build a design system")

	require.NoError(t, err)
	assert.Equal(t, []string{"coordinator", "stylist"}, record.AgentsInvolved)
	assert.Equal(t, "token output", record.Result["stylist"])
	assert.NotEmpty(t, record.ID)

	calls := provider.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].Prompt, "available_agents")
	assert.Contains(t, calls[1].Prompt, "Task: generate tokens")
}

func TestExecute_CoordinatorMalformedPlan(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.AddResponse("Decompose this task", `{"notes": "no subtasks here"}`)
	s := newTestSwarm(t, provider)
	addAgents(t, s, agent.TypeCoordinator, agent.TypeStylist)

	_, err := s.Execute(context.Background(), "build a design system")

	var malformed *completion.MalformedOutputError
	require.ErrorAs(t, err, &malformed)
}

func TestExecute_PersistsWorkflowRecord(t *testing.T) {
	store := memory.NewFileStore(func(o *memory.Options) { o.Dir = t.TempDir() })
	provider := completion.NewMockProvider()
	s := newTestSwarm(t, provider, func(o *Options) {
		o.Workflows = store
	})
	addAgents(t, s, agent.TypeStylist)

	record, err := s.Execute(context.Background(), "style it", func(o *ExecuteOptions) {
		o.WorkflowName = "styling"
	})
	require.NoError(t, err)

	history, err := store.History("styling", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, record.ID, history[0].ID)
	assert.Equal(t, "style it", history[0].Task)
}

func TestExecute_MergesCallerContext(t *testing.T) {
	provider := completion.NewMockProvider()
	s := newTestSwarm(t, provider)
	addAgents(t, s, agent.TypeStylist)

	_, err := s.Execute(context.Background(), "style it", func(o *ExecuteOptions) {
		o.Context = map[string]any{"brand": "Acme"}
	})

	require.NoError(t, err)
	assert.Contains(t, provider.Calls()[0].Prompt, `"brand": "Acme"`)
}

func TestExecute_CompletedCounter(t *testing.T) {
	provider := completion.NewMockProvider()
	s := newTestSwarm(t, provider)
	addAgents(t, s, agent.TypeStylist)

	_, err := s.Execute(context.Background(), "one")
	require.NoError(t, err)
	_, err = s.Execute(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, 2, s.Stats().TasksCompleted)
}
