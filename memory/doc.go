// Package memory contains concrete MemoryStore and WorkflowStore
// implementations. The store interfaces and entry types reside in the core
// package; depend on core.MemoryStore / core.WorkflowStore in your code and
// select an implementation (like the file-backed store below) at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends to be added without introducing dependency cycles.
package memory
