package game

import (
	"fmt"
	"strings"
)

// GameState is one board position. It is a value: Play returns a new state
// and never touches the receiver, so states can be shared freely.
type GameState struct {
	board    Board
	player   Cell // Player to move
	moves    int  // Pieces on the board
	terminal bool
	reward   float64 // Relative to the player who moved into this state
}

// NewGameState returns the empty board with PlayerA to move.
func NewGameState() GameState {
	return GameState{player: PlayerA}
}

// FromBoard builds a position with toMove as the player to move. Termination
// is evaluated for the player who moved last.
func FromBoard(board Board, toMove Cell) (GameState, error) {
	if toMove != PlayerA && toMove != PlayerB {
		return GameState{}, fmt.Errorf("%w: player to move must be A or B, got %d", ErrInvalidBoard, toMove)
	}

	moves := 0
	for col := 0; col < Columns; col++ {
		landed := false
		for row := Rows - 1; row >= 0; row-- {
			switch board[row][col] {
			case PlayerA, PlayerB:
				if landed {
					return GameState{}, fmt.Errorf("%w: floating piece at row %d column %d", ErrInvalidBoard, row, col)
				}
				moves++
			case Empty:
				landed = true
			default:
				return GameState{}, fmt.Errorf("%w: unknown cell value %d at row %d column %d", ErrInvalidBoard, board[row][col], row, col)
			}
		}
	}

	gs := GameState{board: board, player: toMove, moves: moves}
	if moves > 0 {
		gs.evaluateTermination(toMove.Opponent())
	}
	return gs, nil
}

func (gs GameState) Player() Cell {
	return gs.player
}

// LastMover is the player whose move produced this state.
func (gs GameState) LastMover() Cell {
	return gs.player.Opponent()
}

func (gs GameState) IsTerminal() bool {
	return gs.terminal
}

// Reward is the terminal reward relative to LastMover; it is Draw while the
// game is still running.
func (gs GameState) Reward() float64 {
	return gs.reward
}

// RewardFor converts Reward to the given player's perspective.
func (gs GameState) RewardFor(player Cell) float64 {
	if player == gs.LastMover() {
		return gs.reward
	}
	return -gs.reward
}

// Winner returns the player holding a four-in-a-row, or Empty for a draw or
// an unfinished game.
func (gs GameState) Winner() Cell {
	if gs.terminal && gs.reward == Win {
		return gs.LastMover()
	}
	return Empty
}

func (gs GameState) Board() Board {
	return gs.board
}

func (gs GameState) Moves() int {
	return gs.moves
}

// LegalActions lists the open columns in ascending order.
func (gs GameState) LegalActions() []int {
	if gs.terminal {
		return nil
	}
	actions := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if gs.board[0][col] == Empty {
			actions = append(actions, col)
		}
	}
	return actions
}

// Play drops the current player's piece into column and returns the
// resulting state.
func (gs GameState) Play(column int) (GameState, error) {
	if gs.terminal {
		return GameState{}, fmt.Errorf("%w: game is over", ErrInvalidAction)
	}
	if column < 0 || column >= Columns {
		return GameState{}, fmt.Errorf("%w: column %d out of range [0, %d)", ErrInvalidAction, column, Columns)
	}
	if gs.board[0][column] != Empty {
		return GameState{}, fmt.Errorf("%w: column %d is full", ErrInvalidAction, column)
	}

	next := gs // Copies the board array
	for row := Rows - 1; row >= 0; row-- {
		if next.board[row][column] == Empty {
			next.board[row][column] = gs.player
			break
		}
	}
	next.moves++
	next.player = gs.player.Opponent()
	next.evaluateTermination(gs.player)
	return next, nil
}

func (gs *GameState) evaluateTermination(mover Cell) {
	if gs.terminal {
		return
	}
	if hasLine(&gs.board, mover) {
		gs.terminal = true
		gs.reward = Win
		return
	}
	if isFull(&gs.board) {
		gs.terminal = true
		gs.reward = Draw
	}
}

// String renders rows top to bottom, one mark per cell.
func (gs GameState) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < Columns; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(gs.board[row][col].Mark())
		}
	}
	return sb.String()
}
