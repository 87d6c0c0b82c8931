// Package agent implements the named, role-configured workers that turn
// tasks into completion calls. The package focuses on three concerns:
//
//  1. A closed set of agent kinds (Type) with predefined identity profiles
//  2. The task execution primitive (Think) with prompt construction,
//     in-process recall and persistent memory bookkeeping
//  3. Collaboration helpers (CollaborateWith, Refine) built from the same
//     primitive
//
// Agents hold no hidden global state; the completion client, memory store
// and logger are wired explicitly at construction. Orchestration across
// agents lives in the swarm package.
package agent
