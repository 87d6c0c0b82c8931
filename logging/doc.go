// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer FlowLogger with a contextual
// component helper and domain specific logging helpers for completion calls,
// agent tasks and swarm runs.
package logging
