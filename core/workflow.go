package core

import "time"

// WorkflowRecord is the persisted summary of one completed swarm execution.
// Result maps agent type names to the response each agent produced.
type WorkflowRecord struct {
	ID             string         `json:"id"`
	Task           string         `json:"task"`
	Topology       Topology       `json:"topology"`
	AgentsInvolved []string       `json:"agents_involved"`
	Result         map[string]any `json:"result"`
	Duration       time.Duration  `json:"duration"`
	Timestamp      time.Time      `json:"timestamp"`
}

// WorkflowStore persists workflow records keyed by workflow name, following
// the same append-cap-read pattern as MemoryStore (default cap 50).
type WorkflowStore interface {
	// SaveResult appends a record to the named workflow's history, stamping
	// the current time, and trims to the configured cap.
	SaveResult(workflow string, record WorkflowRecord) error

	// History returns up to limit most recent records, oldest-first within
	// that window. Unknown workflows yield an empty slice.
	History(workflow string, limit int) ([]WorkflowRecord, error)
}
