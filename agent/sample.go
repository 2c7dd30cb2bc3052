package agent

import (
	"fmt"
	"math"
	"sort"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"golang.org/x/exp/rand"
)

type samplingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewSamplingAgent returns an agent that samples its move from the root visit
// counts. Temperatures below 1 sharpen the distribution, above 1 flatten it.
func NewSamplingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	if rng == nil {
		panic("sampling requires a random generator")
	}
	return samplingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a samplingAgent) FindMove(state game.GameState) (int, metrics.SearchMetric, error) {
	tree := searcher.NewTree(state)
	metric, err := a.mcts.Simulate(tree)
	if err != nil {
		return searcher.NoAction, metric, err
	}
	visits := tree.Policy()
	if len(visits) == 0 {
		return searcher.NoAction, metric, fmt.Errorf("sampling agent: %w", searcher.ErrNoChildren)
	}
	policy := adjustTemperature(visits, a.temperature)
	return sample(policy, a.rng), metric, nil
}

func adjustTemperature(visits map[int]int, temperature float64) map[int]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make(map[int]float64, len(visits))
	for move, visit := range visits {
		prob := math.Pow(float64(visit), exponent)
		sum += prob
		policy[move] = prob
	}
	// Normalize
	if sum == 0 {
		for move := range policy {
			policy[move] = 1.0 / float64(len(policy))
		}
		return policy
	}
	for move := range policy {
		policy[move] /= sum
	}
	return policy
}

func sample(policy map[int]float64, rng *rand.Rand) int {
	// Walk moves in column order so a seeded generator gives the same pick
	moves := make([]int, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	sort.Ints(moves)

	sampled := rng.Float64()
	cumulative := 0.0
	for _, move := range moves {
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
