// Package swarm implements the coordination layer over named agents. A Swarm
// owns a registry of agents, decomposes an incoming task (delegating to a
// registered coordinator when present), executes the decomposition under one
// of three topologies and aggregates per-agent outputs into a workflow
// record:
//
//   - hierarchical: subtasks and their agents run strictly in plan order,
//     each call's context carrying all previously collected results
//   - mesh: all subtasks and agents run concurrently with no
//     cross-visibility, flattened afterwards (last writer wins per key)
//   - adaptive: a complexity heuristic routes between the two
//
// A failure from any single agent invocation aborts the whole execution; no
// partial results are returned. Callers needing partial-failure tolerance
// must wrap individual subtask executions themselves.
package swarm
