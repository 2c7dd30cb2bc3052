package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

type Engine interface {
	// Run plays a game till it ends and returns the winner, Empty for a draw
	Run() (winner game.Cell, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
