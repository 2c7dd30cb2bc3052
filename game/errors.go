package game

import "errors"

var (
	// ErrInvalidAction is returned for out-of-range or full columns, and for
	// any move on a finished game.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNoLegalMoves is returned when a search or rollout reaches a state
	// that has no move to make.
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrInvalidBoard = errors.New("invalid board")
)
