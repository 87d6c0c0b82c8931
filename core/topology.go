package core

// Topology selects the strategy by which a swarm fans a decomposed task out
// across its agents.
type Topology string

const (
	// TopologyHierarchical processes subtasks strictly in plan order, one
	// agent call at a time, threading all previously collected results into
	// each subsequent call's context.
	TopologyHierarchical Topology = "hierarchical"

	// TopologyMesh runs all subtasks and their agents concurrently; no
	// agent sees another's result during execution.
	TopologyMesh Topology = "mesh"

	// TopologyAdaptive scores plan complexity and routes to mesh above the
	// threshold, hierarchical otherwise.
	TopologyAdaptive Topology = "adaptive"
)

// Valid reports whether t is one of the recognized topologies.
func (t Topology) Valid() bool {
	switch t {
	case TopologyHierarchical, TopologyMesh, TopologyAdaptive:
		return true
	}
	return false
}
