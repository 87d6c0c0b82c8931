package core

// DecompositionPlan is the task breakdown produced before execution, either
// by a coordinating agent (structured output) or by the trivial fallback
// that assigns the whole task to every registered agent.
type DecompositionPlan struct {
	Task     string    `json:"task"`
	Subtasks []Subtask `json:"subtasks"`
}

// Subtask assigns one piece of work to an ordered list of agent type names.
// References that do not resolve to a registered agent are skipped during
// execution, not treated as fatal.
type Subtask struct {
	Task   string   `json:"task"`
	Agents []string `json:"agents"`
}
