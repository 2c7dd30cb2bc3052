package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"connect4/game"

	"github.com/muesli/termenv"
)

// ANSI palette indices for the two players' pieces.
var colors = map[game.Cell]string{
	game.PlayerA: "1", // red
	game.PlayerB: "3", // yellow
}

// Render writes state to w, coloring pieces when w is a color terminal.
func Render(w io.Writer, state game.GameState) error {
	return RenderTo(termenv.NewOutput(w), state)
}

// RenderTo writes the board rows top to bottom followed by a line of column
// indices. Under the Ascii profile the rows equal state.String().
func RenderTo(out *termenv.Output, state game.GameState) error {
	board := state.Board()
	var sb strings.Builder
	for r := 0; r < game.Rows; r++ {
		for c := 0; c < game.Columns; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(mark(out, board[r][c]))
		}
		sb.WriteByte('\n')
	}

	indices := make([]string, game.Columns)
	for c := range indices {
		indices[c] = strconv.Itoa(c)
	}
	sb.WriteString(out.String(strings.Join(indices, " ")).Faint().String())
	sb.WriteByte('\n')

	_, err := fmt.Fprint(out, sb.String())
	return err
}

func mark(out *termenv.Output, cell game.Cell) string {
	color, ok := colors[cell]
	if !ok {
		return string(cell.Mark())
	}
	return out.String(string(cell.Mark())).Foreground(out.Color(color)).Bold().String()
}
