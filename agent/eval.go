package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the most visited move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.GameState) (int, metrics.SearchMetric, error) {
	// A fresh root per turn; trees are not reused across moves
	tree := searcher.NewTree(state)
	metric, err := a.mcts.Simulate(tree)
	if err != nil {
		return searcher.NoAction, metric, err
	}
	best, ok := tree.BestChild()
	if !ok {
		return searcher.NoAction, metric, searcher.ErrNoChildren
	}
	return tree.Node(best).Action, metric, nil
}
