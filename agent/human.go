package agent

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

type humanAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewHumanAgent reads columns from in, one per line, and writes prompts to
// out. Unparsable or illegal columns are asked for again.
func NewHumanAgent(in io.Reader, out io.Writer) Agent {
	return humanAgent{in: bufio.NewScanner(in), out: out}
}

func (a humanAgent) FindMove(state game.GameState) (int, metrics.SearchMetric, error) {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return searcher.NoAction, metrics.SearchMetric{}, fmt.Errorf("human agent: %w", game.ErrNoLegalMoves)
	}

	for {
		fmt.Fprintf(a.out, "Enter your move (column 0-%d): ", game.Columns-1)
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return searcher.NoAction, metrics.SearchMetric{}, fmt.Errorf("reading move: %w", err)
			}
			return searcher.NoAction, metrics.SearchMetric{}, io.EOF
		}

		column, err := strconv.Atoi(strings.TrimSpace(a.in.Text()))
		if err != nil {
			fmt.Fprintf(a.out, "%q is not a column number\n", a.in.Text())
			continue
		}
		if !slices.Contains(legal, column) {
			fmt.Fprintf(a.out, "column %d is not playable, choose one of %v\n", column, legal)
			continue
		}
		return column, metrics.SearchMetric{}, nil
	}
}
