package engine

import (
	"fmt"
	"time"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*LocalEngine)(nil)

type Option func(e *LocalEngine)

// WithState starts the game from state instead of the empty board.
func WithState(state game.GameState) Option {
	return func(e *LocalEngine) {
		e.state = state
	}
}

// WithObserver is called with every state reached after a move.
func WithObserver(observe func(game.GameState)) Option {
	return func(e *LocalEngine) {
		e.observe = observe
	}
}

// LocalEngine alternates two in-process agents. agents[0] plays PlayerA and
// agents[1] plays PlayerB.
type LocalEngine struct {
	state   game.GameState
	agents  [2]agent.Agent
	observe func(game.GameState)
}

func NewLocalEngine(agents [2]agent.Agent, options ...Option) *LocalEngine {
	if agents[0] == nil || agents[1] == nil {
		panic("need an agent for each player")
	}
	e := &LocalEngine{
		state:  game.NewGameState(),
		agents: agents,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) State() game.GameState {
	return e.state
}

// Run executes the game loop until the board is won or full.
func (e *LocalEngine) Run() (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting", e.state.Player())

	for step := 1; !e.state.IsTerminal(); step++ {
		player := e.state.Player()
		move, searchMetric, err := e.agentFor(player).FindMove(e.state)
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("player %s failed to move: %w", player, err)
		}

		next, err := e.state.Play(move)
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("player %s chose column %d: %w", player, move, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Action:       move,
			SearchMetric: searchMetric,
		})
		log.Debug().Int("step", step).Stringer("player", player).Int("column", move).Msg("move played")

		e.state = next
		if e.observe != nil {
			e.observe(next)
		}
	}

	winner := e.state.Winner()
	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if winner == game.Empty {
		log.Info().Msgf("game ended in a draw after %d moves", len(moveMetrics))
	} else {
		log.Info().Msgf("game over after %d moves, winner: player %s", len(moveMetrics), winner)
	}
	return winner, gameMetric, moveMetrics, nil
}

func (e *LocalEngine) agentFor(player game.Cell) agent.Agent {
	if player == game.PlayerB {
		return e.agents[1]
	}
	return e.agents[0]
}
