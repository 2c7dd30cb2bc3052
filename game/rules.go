package game

// Every run of Connect cells is anchored at (row, col) and extends along one
// of these (dRow, dCol) directions.
var directions = [4][2]int{
	{0, 1},  // Horizontal
	{1, 0},  // Vertical
	{1, 1},  // Diagonal down-right
	{1, -1}, // Diagonal down-left
}

// hasLine reports whether player owns Connect consecutive cells in any
// direction.
func hasLine(board *Board, player Cell) bool {
	if player == Empty {
		return false
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if board[row][col] != player {
				continue
			}
			for _, d := range directions {
				if runOf(board, player, row, col, d[0], d[1]) {
					return true
				}
			}
		}
	}
	return false
}

func runOf(board *Board, player Cell, row, col, dRow, dCol int) bool {
	endRow := row + (Connect-1)*dRow
	endCol := col + (Connect-1)*dCol
	if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Columns {
		return false
	}
	for i := 1; i < Connect; i++ {
		if board[row+i*dRow][col+i*dCol] != player {
			return false
		}
	}
	return true
}

// isFull reports whether no column accepts another piece.
func isFull(board *Board) bool {
	for col := 0; col < Columns; col++ {
		if board[0][col] == Empty {
			return false
		}
	}
	return true
}
