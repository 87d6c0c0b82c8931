package agent

import (
	"fmt"
	"strings"
)

// Type identifies one of the closed set of agent kinds. Unknown values are
// rejected at construction, not at call time.
type Type string

const (
	// TypeCoordinator decomposes tasks and synthesizes swarm output.
	TypeCoordinator Type = "coordinator"
	// TypeAnalyst researches design trends and brand positioning.
	TypeAnalyst Type = "analyst"
	// TypeStrategist plans layout hierarchies and user flows.
	TypeStrategist Type = "strategist"
	// TypeStylist generates design tokens and theme variations.
	TypeStylist Type = "stylist"
	// TypeBuilder produces token-driven component structures.
	TypeBuilder Type = "builder"
	// TypeCurator audits output quality and accessibility.
	TypeCurator Type = "curator"
)

// Types lists every known agent type in canonical order.
func Types() []Type {
	return []Type{TypeCoordinator, TypeAnalyst, TypeStrategist, TypeStylist, TypeBuilder, TypeCurator}
}

// Valid reports whether t names a known agent type.
func (t Type) Valid() bool {
	switch t {
	case TypeCoordinator, TypeAnalyst, TypeStrategist, TypeStylist, TypeBuilder, TypeCurator:
		return true
	}
	return false
}

// String returns the lowercase type key.
func (t Type) String() string { return string(t) }

// ParseType maps a case-insensitive type key to its Type, or returns an
// *UnknownAgentTypeError.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &UnknownAgentTypeError{Value: s}
	}
	return t, nil
}

// UnknownAgentTypeError reports an agent type key outside the closed set.
type UnknownAgentTypeError struct {
	Value string
}

// Error implements the error interface.
func (e *UnknownAgentTypeError) Error() string {
	return fmt.Sprintf("agent: unknown agent type: %q", e.Value)
}

// Profile is the predefined identity of one agent kind.
type Profile struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
	Personality  string   `json:"personality"`
}

// Profile returns the identity record for a valid type. Invalid types yield
// a zero Profile; construction paths validate first.
func (t Type) Profile() Profile {
	switch t {
	case TypeCoordinator:
		return Profile{
			Name: "Maestro",
			Role: "Workflow Orchestrator",
			Capabilities: []string{
				"Coordinate multi-agent workflows",
				"Decompose complex tasks",
				"Synthesize agent outputs",
				"Manage dependencies",
				"Optimize execution order",
			},
			Personality: "strategic and organized",
		}
	case TypeAnalyst:
		return Profile{
			Name: "Researcher",
			Role: "Design Trend Analyst",
			Capabilities: []string{
				"Analyze current web design trends",
				"Research color theory and modern palettes",
				"Identify typography trends",
				"Study motion design patterns",
				"Understand accessibility best practices",
			},
			Personality: "analytical and thorough",
		}
	case TypeStrategist:
		return Profile{
			Name: "Arto",
			Role: "UX Strategist",
			Capabilities: []string{
				"Design layout hierarchies",
				"Create responsive grid systems",
				"Define spacing and rhythm",
				"Plan component architecture",
				"Optimize user flows",
			},
			Personality: "thoughtful and user-focused",
		}
	case TypeStylist:
		return Profile{
			Name: "Stylist",
			Role: "Visual Design Specialist",
			Capabilities: []string{
				"Generate design tokens from brand configurations",
				"Create color palettes with WCAG compliance",
				"Select typography pairings",
				"Define motion and animation parameters",
				"Ensure visual coherence",
			},
			Personality: "creative and precise",
		}
	case TypeBuilder:
		return Profile{
			Name: "Builder",
			Role: "Component Engineer",
			Capabilities: []string{
				"Generate semantic HTML structures",
				"Create token-driven CSS",
				"Build accessible components",
				"Implement responsive patterns",
				"Optimize for performance",
			},
			Personality: "technical and detail-oriented",
		}
	case TypeCurator:
		return Profile{
			Name: "Curator",
			Role: "Quality Assurance Specialist",
			Capabilities: []string{
				"Validate WCAG contrast ratios",
				"Check brand alignment",
				"Audit token usage",
				"Verify semantic HTML",
				"Generate quality reports",
			},
			Personality: "meticulous and objective",
		}
	}
	return Profile{}
}
