package searcher

import "fmt"

// Hyperparameters for MCTS

const DefaultIterations = 1000

const CSquared = 1.0 // Exploration constant of the threat-weighted terms

const DefaultExploration = 1.41 // Exploration constant of the per-child UCT

// Threat weights applied to the offense and defense terms during selection
const (
	NeutralWeight   = 0.5
	ThreatWeight    = 1.0 // Player to move already holds a line
	EscalatedWeight = 2.0 // Opponent already holds a line
)

// Variant selects between the reference search rules and the corrected ones.
type Variant int

const (
	// Reference descends while a node has children, weights every sibling
	// with the same flat threat score, may expand an action more than once,
	// skips terminal frontier nodes and adds the terminal reward unchanged
	// at every level.
	Reference Variant = iota
	// Corrected expands each action once, stops descending at nodes with
	// untried actions, scores each child with UCT from the perspective of
	// the player who moved into it and backs up terminal frontier nodes.
	Corrected
)

func (v Variant) String() string {
	switch v {
	case Reference:
		return "reference"
	case Corrected:
		return "corrected"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "reference":
		return Reference, nil
	case "corrected":
		return Corrected, nil
	default:
		return Reference, fmt.Errorf("unknown search variant %q", s)
	}
}
