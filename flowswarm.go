// Package flowswarm provides a high-level façade over the completion client,
// agent swarm and persistent memory layers for building AI design-system
// generation pipelines. Most applications interact with this package by:
//  1. Creating a FlowSwarm via New() (optionally overriding the provider,
//     stores and logger)
//  2. Executing swarm tasks (Execute) or running the full design-system
//     workflow (Generator)
//
// The façade delegates orchestration to swarm.Swarm while keeping setup and
// usage ergonomics concise. Defaults read provider credentials from the
// environment and persist agent memory under .flowstudio/memory.
package flowswarm

import (
	"context"

	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/completion/anthropic"
	"github.com/flowstudio/flowswarm/core"
	"github.com/flowstudio/flowswarm/logging"
	"github.com/flowstudio/flowswarm/memory"
	"github.com/flowstudio/flowswarm/swarm"
	"github.com/flowstudio/flowswarm/workflow"
)

// Options configures the FlowSwarm instance.
type Options struct {
	// Provider supplies completions. Defaults to the Anthropic provider
	// configured from the environment.
	Provider completion.Provider

	// CompletionOptions tune retry, batching and concurrency behavior of the
	// underlying client.
	CompletionOptions []func(o *completion.Options)

	// MemoryDir is where the default file-backed stores persist. Ignored when
	// Store and Workflows are both supplied.
	MemoryDir string

	// Store persists agent task history. Defaults to a file store under
	// MemoryDir.
	Store core.MemoryStore

	// Workflows persists swarm workflow records. Defaults to the same file
	// store as Store.
	Workflows core.WorkflowStore

	// Topology selects the swarm execution strategy.
	Topology core.Topology

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// FlowSwarm is the high-level façade aggregating the completion client, the
// standard design swarm and the persistence layer.
type FlowSwarm struct {
	opts   Options
	client *completion.Client
	swarm  *swarm.Swarm
}

// New creates a FlowSwarm with optional overrides. Any unset service is
// initialized with its default implementation; the default provider requires
// ANTHROPIC_API_KEY in the environment.
func New(optFns ...func(o *Options)) (*FlowSwarm, error) {
	opts := Options{
		Topology: core.TopologyHierarchical,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Provider == nil {
		provider, err := anthropic.New()
		if err != nil {
			return nil, err
		}
		opts.Provider = provider
	}

	if opts.Store == nil || opts.Workflows == nil {
		fileStore := memory.NewFileStore(func(o *memory.Options) {
			if opts.MemoryDir != "" {
				o.Dir = opts.MemoryDir
			}
		})
		if opts.Store == nil {
			opts.Store = fileStore
		}
		if opts.Workflows == nil {
			opts.Workflows = fileStore
		}
	}

	clientOpts := append([]func(o *completion.Options){func(o *completion.Options) {
		o.Logger = opts.Logger
	}}, opts.CompletionOptions...)
	client := completion.NewClient(opts.Provider, clientOpts...)

	s := swarm.NewFlowStudioSwarm(client, func(o *swarm.Options) {
		o.Topology = opts.Topology
		o.Store = opts.Store
		o.Workflows = opts.Workflows
		o.Logger = opts.Logger
	})

	return &FlowSwarm{opts: opts, client: client, swarm: s}, nil
}

// Client returns the underlying completion client.
func (f *FlowSwarm) Client() *completion.Client { return f.client }

// Swarm returns the configured design swarm.
func (f *FlowSwarm) Swarm() *swarm.Swarm { return f.swarm }

// Execute runs a task through the swarm under the configured topology.
func (f *FlowSwarm) Execute(ctx context.Context, task string, optFns ...func(o *swarm.ExecuteOptions)) (*core.WorkflowRecord, error) {
	return f.swarm.Execute(ctx, task, optFns...)
}

// Generator builds a design-system workflow generator sharing this instance's
// client, store and logger.
func (f *FlowSwarm) Generator(optFns ...func(o *workflow.Options)) (*workflow.Generator, error) {
	base := func(o *workflow.Options) {
		o.Store = f.opts.Store
		o.Logger = f.opts.Logger
	}
	return workflow.NewGenerator(f.client, append([]func(o *workflow.Options){base}, optFns...)...)
}
