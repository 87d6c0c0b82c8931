package swarm

import (
	"context"
	"testing"

	"github.com/flowstudio/flowswarm/agent"
	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSwarm(t *testing.T, provider *completion.MockProvider, optFns ...func(o *Options)) *Swarm {
	t.Helper()
	return New(completion.NewClient(provider), optFns...)
}

func TestNewFlowStudioSwarm_RegistersAllAgents(t *testing.T) {
	s := NewFlowStudioSwarm(completion.NewClient(completion.NewMockProvider()))

	stats := s.Stats()
	assert.Equal(t, "Flow Studio Design Swarm", stats.Name)
	assert.Equal(t, core.TopologyHierarchical, stats.Topology)
	assert.Equal(t, 6, stats.AgentCount)

	coord, ok := s.Agent(agent.TypeCoordinator)
	require.True(t, ok)
	assert.Equal(t, "Maestro", coord.Name())
}

func TestSwarm_AddAgent_OverwriteKeepsOrder(t *testing.T) {
	s := newTestSwarm(t, completion.NewMockProvider())
	_, err := s.AddAgent(agent.TypeStylist)
	require.NoError(t, err)
	_, err = s.AddAgent(agent.TypeBuilder)
	require.NoError(t, err)
	_, err = s.AddAgent(agent.TypeStylist)
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 2, stats.AgentCount)
	assert.Equal(t, []string{"stylist", "builder"}, s.typeNames())
}

func TestSwarm_Synthesize_WithoutCoordinatorPassesThrough(t *testing.T) {
	s := newTestSwarm(t, completion.NewMockProvider())
	results := map[string]any{"stylist": "tokens"}

	out, err := s.Synthesize(context.Background(), results, "a design system")

	require.NoError(t, err)
	assert.Equal(t, results, out)
}

func TestSwarm_Synthesize_WithCoordinator(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.AddResponse("Synthesize these agent results", `{"summary": "combined"}`)
	s := newTestSwarm(t, provider)
	_, err := s.AddAgent(agent.TypeCoordinator)
	require.NoError(t, err)

	out, err := s.Synthesize(context.Background(), map[string]any{"stylist": "tokens"}, "a design system")

	require.NoError(t, err)
	value, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "combined", value["summary"])
}
