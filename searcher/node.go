package searcher

import (
	"connect4/game"
)

const (
	NoParent = -1
	NoAction = -1
)

// Node is one position in the search tree. Parent and Children are indices
// into the owning Tree.
type Node struct {
	State    game.GameState
	Action   int // Column played to reach State, NoAction for the root
	Parent   int
	Children []int
	Visits   int
	Value    float64
}

// Tree is an arena of nodes with the root at index 0. Pointers returned by
// Root and Node are invalidated by the next expansion.
type Tree struct {
	nodes []Node
}

func NewTree(state game.GameState) *Tree {
	return &Tree{
		nodes: []Node{{State: state, Action: NoAction, Parent: NoParent}},
	}
}

func (t *Tree) Root() *Node {
	return &t.nodes[0]
}

func (t *Tree) Node(i int) *Node {
	return &t.nodes[i]
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) addChild(parent, action int, state game.GameState) int {
	t.nodes = append(t.nodes, Node{
		State:  state,
		Action: action,
		Parent: parent,
	})
	child := len(t.nodes) - 1
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
	return child
}

// untried returns the legal actions of node i that have no child yet.
func (t *Tree) untried(i int) []int {
	node := &t.nodes[i]
	expanded := [game.Columns]bool{}
	for _, c := range node.Children {
		expanded[t.nodes[c].Action] = true
	}

	var actions []int
	for _, action := range node.State.LegalActions() {
		if !expanded[action] {
			actions = append(actions, action)
		}
	}
	return actions
}

// BestChild returns the most visited child of the root; the first one wins
// ties.
func (t *Tree) BestChild() (int, bool) {
	best := -1
	maxVisits := -1
	for _, c := range t.nodes[0].Children {
		if t.nodes[c].Visits > maxVisits {
			maxVisits = t.nodes[c].Visits
			best = c
		}
	}
	return best, best != -1
}

// Policy sums root child visits per action.
func (t *Tree) Policy() map[int]int {
	policy := make(map[int]int, game.Columns)
	for _, c := range t.nodes[0].Children {
		policy[t.nodes[c].Action] += t.nodes[c].Visits
	}
	return policy
}
