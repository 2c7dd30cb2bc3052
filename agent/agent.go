package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

type Agent interface {
	// FindMove returns the column to play and search metrics (if collected)
	FindMove(state game.GameState) (int, metrics.SearchMetric, error)
}
