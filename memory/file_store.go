package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/flowstudio/flowswarm/core"
	"github.com/flowstudio/flowswarm/logging"
	"github.com/google/uuid"
)

const (
	agentMemoryFile = "agent-memory.json"
	workflowFile    = "workflows.json"

	// searchWindow bounds how far back Search looks.
	searchWindow = 100
)

// Options configure a FileStore.
type Options struct {
	// Dir is the directory holding the store files, created lazily.
	Dir string
	// AgentCap is the per-agent log cap enforced on every Save.
	AgentCap int
	// WorkflowCap is the per-workflow history cap.
	WorkflowCap int
	// Logger receives store telemetry. Defaults to NoOp.
	Logger logging.Logger
}

// FileStore persists agent memory and workflow history as two JSON files,
// each a map keyed by agent or workflow name. Every operation is a
// read-modify-write of the whole file.
//
// Concurrency: writers within one process are serialized by a mutex.
// Concurrent writers from separate processes race with last-write-wins at
// whole-file granularity and can silently lose entries; callers needing a
// stronger guarantee must layer their own coordination.
type FileStore struct {
	mu     sync.Mutex
	opts   Options
	logger *logging.FlowLogger
}

// Interface compliance (compile-time assertions)
var (
	_ core.MemoryStore   = (*FileStore)(nil)
	_ core.WorkflowStore = (*FileStore)(nil)
)

// NewFileStore constructs a store rooted at Options.Dir
// (default ".flowstudio/memory").
func NewFileStore(optFns ...func(o *Options)) *FileStore {
	opts := Options{
		Dir:         filepath.Join(".flowstudio", "memory"),
		AgentCap:    100,
		WorkflowCap: 50,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FileStore{
		opts:   opts,
		logger: logging.NewFlowLogger(opts.Logger).WithComponent("memory"),
	}
}

// Save appends an entry to the agent's log, stamping the current time, and
// trims the log to the most recent AgentCap entries.
func (s *FileStore) Save(agent string, entry core.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets, err := readBuckets[core.MemoryEntry](s.path(agentMemoryFile))
	if err != nil {
		return err
	}

	entry.Agent = agent
	entry.Timestamp = time.Now()
	log := append(buckets[agent], entry)
	if excess := len(log) - s.opts.AgentCap; excess > 0 {
		log = log[excess:]
	}
	buckets[agent] = log

	return s.writeBuckets(agentMemoryFile, buckets)
}

// Load returns up to limit most recent entries, oldest-first within that
// window. A missing store file or unknown agent yields an empty slice.
func (s *FileStore) Load(agent string, limit int) ([]core.MemoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets, err := readBuckets[core.MemoryEntry](s.path(agentMemoryFile))
	if err != nil {
		return nil, err
	}
	return tail(buckets[agent], limit), nil
}

// Search matches query case-insensitively against the task text or the
// serialized response of the 100 most recent entries, returning up to limit
// most recent matches, oldest-first.
func (s *FileStore) Search(agent string, query string, limit int) ([]core.MemoryEntry, error) {
	entries, err := s.Load(agent, searchWindow)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []core.MemoryEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Task), needle) {
			matches = append(matches, e)
			continue
		}
		raw, err := json.Marshal(e.Response)
		if err == nil && strings.Contains(strings.ToLower(string(raw)), needle) {
			matches = append(matches, e)
		}
	}
	return tail(matches, limit), nil
}

// Stats summarizes the agent's full persisted history.
func (s *FileStore) Stats(agent string) (core.MemoryStats, error) {
	entries, err := s.Load(agent, s.opts.AgentCap)
	if err != nil {
		return core.MemoryStats{}, err
	}

	stats := core.MemoryStats{Agent: agent, Count: len(entries)}
	if len(entries) == 0 {
		return stats, nil
	}
	stats.Oldest = entries[0].Timestamp
	stats.Newest = entries[len(entries)-1].Timestamp

	var total time.Duration
	var timed int
	for _, e := range entries {
		if e.Duration > 0 {
			total += e.Duration
			timed++
		}
	}
	if timed > 0 {
		stats.MeanElapsed = total / time.Duration(timed)
	}
	return stats, nil
}

// Clear removes the agent's bucket entirely; clearing an unknown agent or a
// missing store file is a no-op.
func (s *FileStore) Clear(agent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets, err := readBuckets[core.MemoryEntry](s.path(agentMemoryFile))
	if err != nil {
		return err
	}
	if _, ok := buckets[agent]; !ok {
		return nil
	}
	delete(buckets, agent)
	return s.writeBuckets(agentMemoryFile, buckets)
}

// exportSnapshot is the wire shape written by Export.
type exportSnapshot struct {
	ID         string             `json:"id"`
	Agent      string             `json:"agent"`
	ExportedAt time.Time          `json:"exported_at"`
	Count      int                `json:"count"`
	Entries    []core.MemoryEntry `json:"entries"`
}

// Export writes a snapshot of the agent's full history to w.
func (s *FileStore) Export(agent string, w io.Writer) error {
	entries, err := s.Load(agent, s.opts.AgentCap)
	if err != nil {
		return err
	}

	snap := exportSnapshot{
		ID:         uuid.NewString(),
		Agent:      agent,
		ExportedAt: time.Now(),
		Count:      len(entries),
		Entries:    entries,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("export memory for %s: %w", agent, err)
	}
	s.logger.Info("Exported agent memory", "agent", agent, "count", len(entries))
	return nil
}

// SaveResult appends a record to the named workflow's history, stamping the
// current time, and trims to the most recent WorkflowCap records.
func (s *FileStore) SaveResult(workflow string, record core.WorkflowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets, err := readBuckets[core.WorkflowRecord](s.path(workflowFile))
	if err != nil {
		return err
	}

	record.Timestamp = time.Now()
	history := append(buckets[workflow], record)
	if excess := len(history) - s.opts.WorkflowCap; excess > 0 {
		history = history[excess:]
	}
	buckets[workflow] = history

	return s.writeBuckets(workflowFile, buckets)
}

// History returns up to limit most recent records, oldest-first within that
// window.
func (s *FileStore) History(workflow string, limit int) ([]core.WorkflowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets, err := readBuckets[core.WorkflowRecord](s.path(workflowFile))
	if err != nil {
		return nil, err
	}
	return tail(buckets[workflow], limit), nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.opts.Dir, name)
}

func (s *FileStore) writeBuckets(name string, buckets any) error {
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}
	raw, err := json.MarshalIndent(buckets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// readBuckets loads a name -> entries map, treating a missing file as empty.
func readBuckets[T any](path string) (map[string][]T, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	buckets := map[string][]T{}
	if err := json.Unmarshal(raw, &buckets); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buckets, nil
}

// tail returns the last limit elements, preserving order. A non-positive
// limit returns an empty slice.
func tail[T any](items []T, limit int) []T {
	if limit <= 0 || len(items) == 0 {
		return []T{}
	}
	if len(items) > limit {
		items = items[len(items)-limit:]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
