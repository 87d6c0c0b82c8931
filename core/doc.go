// Package core provides the foundational domain types and store interfaces
// used by FlowSwarm. It defines the shared vocabulary for:
//
//   - Memory entries (one agent's recorded task/response pair)
//   - Workflow records (the persisted summary of one swarm execution)
//   - Decomposition plans (task -> subtasks -> agent assignments)
//   - Topologies (the strategies a swarm uses to fan work out)
//   - Pluggable stores for agent memory and workflow history
//
// The package intentionally keeps implementation concerns (persistence,
// completion providers, concrete agents) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
