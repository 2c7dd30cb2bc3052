package game

// Threats flags which players already hold a four-in-a-row on the board.
type Threats struct {
	Mover    bool // Player to move
	Opponent bool
}

// DetectThreats scans the board for existing lines of both players. It only
// biases search; termination is decided by GameState alone.
func DetectThreats(gs GameState) Threats {
	return Threats{
		Mover:    hasLine(&gs.board, gs.player),
		Opponent: hasLine(&gs.board, gs.player.Opponent()),
	}
}
