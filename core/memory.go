package core

import (
	"io"
	"time"
)

// TokenUsage captures token consumption reported by a completion provider.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Total returns the combined input and output token count.
func (u TokenUsage) Total() int { return u.InputTokens + u.OutputTokens }

// MemoryEntry is one recorded task/response pair belonging to a single named
// agent. Entries are append-only: once written they are never mutated, only
// trimmed oldest-first when the per-agent cap is exceeded.
type MemoryEntry struct {
	Agent     string        `json:"agent"`
	Task      string        `json:"task"`
	Response  any           `json:"response"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration,omitempty"`
	Usage     *TokenUsage   `json:"usage,omitempty"`
}

// MemoryStats aggregates a single agent's persisted history.
type MemoryStats struct {
	Agent       string        `json:"agent"`
	Count       int           `json:"count"`
	Oldest      time.Time     `json:"oldest,omitzero"`
	Newest      time.Time     `json:"newest,omitzero"`
	MeanElapsed time.Duration `json:"mean_elapsed"`
}

// MemoryStore persists per-agent task history. The agent name is the only
// join key between in-process agent state and the store; a misspelled name
// silently addresses a fresh bucket.
//
// Implementations must keep each agent's log at or below their configured
// cap after every Save, and must treat reads of unknown agents as empty
// rather than as errors.
type MemoryStore interface {
	// Save appends an entry to the agent's log, stamping the current time,
	// and trims the log to the most recent cap entries.
	Save(agent string, entry MemoryEntry) error

	// Load returns up to limit most recent entries, oldest-first within
	// that window. Unknown agents yield an empty slice.
	Load(agent string, limit int) ([]MemoryEntry, error)

	// Search matches query case-insensitively against the task text or the
	// serialized response of the 100 most recent entries, returning up to
	// limit most recent matches.
	Search(agent string, query string, limit int) ([]MemoryEntry, error)

	// Stats summarizes the agent's full history.
	Stats(agent string) (MemoryStats, error)

	// Clear removes the agent's bucket entirely. Clearing an unknown agent
	// is a no-op.
	Clear(agent string) error

	// Export writes a snapshot of the agent's history to the sink.
	Export(agent string, w io.Writer) error
}
