package agent

import (
	"context"
	"testing"
	"time"

	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/flowstudio/flowswarm/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T, typ Type, provider *completion.MockProvider, optFns ...func(o *Options)) *Agent {
	t.Helper()
	a, err := New(typ, completion.NewClient(provider), optFns...)
	require.NoError(t, err)
	return a
}

func newTestStore(t *testing.T) *memory.FileStore {
	t.Helper()
	dir := t.TempDir()
	return memory.NewFileStore(func(o *memory.Options) { o.Dir = dir })
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(Type("wizard"), completion.NewClient(completion.NewMockProvider()))

	var unknown *UnknownAgentTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "wizard", unknown.Value)
}

func TestNew_Identity(t *testing.T) {
	a := newTestAgent(t, TypeStylist, completion.NewMockProvider())

	assert.Equal(t, "Stylist", a.Name())
	assert.Equal(t, TypeStylist, a.Type())
	assert.Equal(t, "Visual Design Specialist", a.Profile().Role)
}

func TestAgent_Think(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.AddResponse("generate a palette", "blue and gold")
	a := newTestAgent(t, TypeStylist, provider)

	result, err := a.Think(context.Background(), "generate a palette", nil)

	require.NoError(t, err)
	assert.Equal(t, "Stylist", result.Agent)
	assert.Equal(t, "generate a palette", result.Task)
	assert.Equal(t, "blue and gold", result.Response)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestAgent_Think_PromptIncludesTaskAndContext(t *testing.T) {
	provider := completion.NewMockProvider()
	a := newTestAgent(t, TypeStylist, provider)

	_, err := a.Think(context.Background(), "generate a palette", map[string]any{
		"brand": "Acme",
	})

	require.NoError(t, err)
	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Task: generate a palette")
	assert.Contains(t, calls[0].Prompt, "Context:")
	assert.Contains(t, calls[0].Prompt, `"brand": "Acme"`)
	assert.Contains(t, calls[0].System, "You are Stylist, a Visual Design Specialist")
	assert.Contains(t, calls[0].System, "WCAG AAA")
}

func TestAgent_Think_RecentExperienceInPrompt(t *testing.T) {
	provider := completion.NewMockProvider()
	a := newTestAgent(t, TypeStylist, provider)

	for _, task := range []string{"first task", "second task", "third task", "fourth task"} {
		_, err := a.Think(context.Background(), task, nil)
		require.NoError(t, err)
	}

	_, err := a.Think(context.Background(), "fifth task", nil)
	require.NoError(t, err)

	calls := provider.Calls()
	require.Len(t, calls, 5)
	// First call has no history.
	assert.NotContains(t, calls[0].Prompt, "Recent Experience:")
	// The last call digests the three most recent tasks only.
	last := calls[4].Prompt
	assert.Contains(t, last, "Recent Experience:")
	assert.NotContains(t, last, "first task")
	assert.Contains(t, last, "1. second task")
	assert.Contains(t, last, "3. fourth task")
}

func TestAgent_Think_Structured(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.AddResponse("pick a color", `{"color": "teal"}`)
	a := newTestAgent(t, TypeStylist, provider)

	result, err := a.Think(context.Background(), "pick a color", nil, func(o *ThinkOptions) {
		o.Structured = true
	})

	require.NoError(t, err)
	value, ok := result.Response.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "teal", value["color"])
}

func TestAgent_Think_PersistsToStore(t *testing.T) {
	store := newTestStore(t)
	provider := completion.NewMockProvider()
	provider.AddResponse("remember me", "noted")
	a := newTestAgent(t, TypeStylist, provider, func(o *Options) {
		o.Store = store
	})

	_, err := a.Think(context.Background(), "remember me", nil)
	require.NoError(t, err)

	entries, err := store.Load("Stylist", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "remember me", entries[0].Task)
	assert.Equal(t, "noted", entries[0].Response)
	require.NotNil(t, entries[0].Usage)
}

func TestAgent_Think_DisablePersistence(t *testing.T) {
	store := newTestStore(t)
	a := newTestAgent(t, TypeStylist, completion.NewMockProvider(), func(o *Options) {
		o.Store = store
	})

	_, err := a.Think(context.Background(), "ephemeral", nil, func(o *ThinkOptions) {
		o.DisablePersistence = true
	})
	require.NoError(t, err)

	entries, err := store.Load("Stylist", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAgent_LoadHistory(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Stylist", core.MemoryEntry{Task: "past work", Response: "ok"}))

	a := newTestAgent(t, TypeStylist, completion.NewMockProvider(), func(o *Options) {
		o.Store = store
	})
	require.NoError(t, a.LoadHistory(10))

	assert.Equal(t, 1, a.Stats().MemorySize)

	provider := completion.NewMockProvider()
	// The warm-started window surfaces in the next prompt.
	b := newTestAgent(t, TypeStylist, provider, func(o *Options) { o.Store = store })
	require.NoError(t, b.LoadHistory(10))
	_, err := b.Think(context.Background(), "new task", nil)
	require.NoError(t, err)
	assert.Contains(t, provider.Calls()[0].Prompt, "past work")
}

func TestAgent_ClearMemory(t *testing.T) {
	store := newTestStore(t)
	a := newTestAgent(t, TypeStylist, completion.NewMockProvider(), func(o *Options) {
		o.Store = store
	})
	_, err := a.Think(context.Background(), "something", nil)
	require.NoError(t, err)

	a.ClearMemory()

	assert.Equal(t, 0, a.Stats().MemorySize)
	// Persisted history is untouched.
	entries, err := store.Load("Stylist", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAgent_Stats(t *testing.T) {
	a := newTestAgent(t, TypeCurator, completion.NewMockProvider())
	_, err := a.Think(context.Background(), "audit", nil)
	require.NoError(t, err)

	stats := a.Stats()

	assert.Equal(t, "Curator", stats.Name)
	assert.Equal(t, TypeCurator, stats.Type)
	assert.Equal(t, 1, stats.TaskCount)
	assert.Equal(t, 1, stats.MemorySize)
	assert.Equal(t, 5, stats.Capabilities)
}

func TestAgent_CollaborateWith(t *testing.T) {
	provider := completion.NewMockProvider()
	provider.AddResponse("design a landing page", "draft")
	a := newTestAgent(t, TypeStylist, provider)
	b := newTestAgent(t, TypeBuilder, provider)

	collab, err := a.CollaborateWith(context.Background(), b, "design a landing page", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"Stylist", "Builder"}, collab.Agents)
	assert.Contains(t, collab.Results, "Stylist")
	assert.Contains(t, collab.Results, "Builder")

	calls := provider.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].Prompt, "Working with Builder")
	assert.Contains(t, calls[1].Prompt, "Building on Stylist's work")
	assert.Contains(t, calls[1].Prompt, "previous_work")
}

func TestAgent_Refine(t *testing.T) {
	provider := completion.NewMockProvider()
	a := newTestAgent(t, TypeCurator, provider)

	_, err := a.Refine(context.Background(), map[string]any{"tokens": "v1"}, "improve contrast")

	require.NoError(t, err)
	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Review and refine this work based on the following criteria: improve contrast")
	assert.Contains(t, calls[0].Prompt, "refinement")
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("  Stylist ")
	require.NoError(t, err)
	assert.Equal(t, TypeStylist, typ)

	_, err = ParseType("wizard")
	var unknown *UnknownAgentTypeError
	require.ErrorAs(t, err, &unknown)
}

func TestTypes_AllValidWithProfiles(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.Valid())
		profile := typ.Profile()
		assert.NotEmpty(t, profile.Name)
		assert.NotEmpty(t, profile.Role)
		assert.NotEmpty(t, profile.Capabilities)
	}
}
