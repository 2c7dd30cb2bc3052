package searcher

import (
	"math"

	"connect4/game"
)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N int) uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return uct{numerator: cSquared * math.Log(float64(N))}
}

// evaluate returns +Inf for unvisited children so they are picked first.
func (u uct) evaluate(q float64, n int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/float64(n) + math.Sqrt(u.numerator/float64(n))
}

func threatWeights(threats game.Threats) (offense, defense float64) {
	offense, defense = NeutralWeight, NeutralWeight
	if threats.Mover {
		offense = ThreatWeight
	}
	if threats.Opponent {
		defense = EscalatedWeight
	}
	return offense, defense
}

// pickWeighted scores children with the best offense and defense UCT over
// all siblings, scaled by the threat weights of the parent position. The
// score is the same for every sibling, so the first child wins unless one
// is unvisited.
func (t *Tree) pickWeighted(i int) int {
	node := &t.nodes[i]
	for _, c := range node.Children {
		if t.nodes[c].Visits == 0 {
			return c
		}
	}

	policy := newUCT(CSquared, node.Visits)
	offense, defense := math.Inf(-1), math.Inf(-1)
	for _, c := range node.Children {
		child := &t.nodes[c]
		offense = max(offense, policy.evaluate(child.Value, child.Visits))
		defense = max(defense, policy.evaluate(-child.Value, child.Visits))
	}

	offenseWeight, defenseWeight := threatWeights(game.DetectThreats(node.State))

	best := -1
	bestScore := math.Inf(-1)
	for _, c := range node.Children {
		score := offenseWeight*offense + defenseWeight*defense
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// pickUCT scores each child on its own statistics.
func (t *Tree) pickUCT(i int, cSquared float64) int {
	node := &t.nodes[i]
	policy := newUCT(cSquared, max(node.Visits, 1))

	best := -1
	bestScore := math.Inf(-1)
	for _, c := range node.Children {
		child := &t.nodes[c]
		score := policy.evaluate(child.Value, child.Visits)
		if score == math.Inf(1) {
			return c
		}
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}
