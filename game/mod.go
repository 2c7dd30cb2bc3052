package game

// Board geometry and win length are fixed.
const (
	Rows    = 6
	Columns = 7
	Connect = 4
)

// Rewards are always read from the perspective of the player who moved into
// a state.
const (
	Win  = 1.0
	Loss = -1.0
	Draw = 0.0
)

// Cell is the content of one board square, and doubles as the player id.
type Cell uint8

const (
	Empty Cell = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// Mark is the single character used when rendering the cell.
func (c Cell) Mark() byte {
	switch c {
	case PlayerA:
		return 'X'
	case PlayerB:
		return 'O'
	default:
		return '_'
	}
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "none"
	}
}

// Board is indexed [row][column]; row 0 is the top row.
type Board [Rows][Columns]Cell
