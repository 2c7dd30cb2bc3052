package searcher

import (
	"testing"
	"time"

	"connect4/game"

	"github.com/stretchr/testify/require"
)

/*
search loop:
- select: reference descends through the first child, corrected stops at untried actions
- expand: reference may repeat an action, corrected never does
- simulate: random playout to a terminal state
- backup: reference adds the raw reward, corrected converts per node
- accounting: root visits = episodes - skipped (reference), = episodes (corrected)
*/

func parseBoard(t *testing.T, toMove game.Cell, rows ...string) game.GameState {
	t.Helper()
	var board game.Board
	for r, row := range rows {
		for c, mark := range row {
			switch mark {
			case 'X':
				board[r][c] = game.PlayerA
			case 'O':
				board[r][c] = game.PlayerB
			}
		}
	}
	state, err := game.FromBoard(board, toMove)
	require.NoError(t, err)
	return state
}

// singleColumn leaves only column 6 open and no line on the board.
func singleColumn(t *testing.T) game.GameState {
	return parseBoard(t, game.PlayerA,
		"XXOOXX_",
		"OOXXOO_",
		"XXOOXX_",
		"OOXXOO_",
		"XXOOXX_",
		"OOXXOO_",
	)
}

// winningColumn leaves only column 6 open; PlayerB completes the top row by
// playing it.
func winningColumn(t *testing.T) game.GameState {
	return parseBoard(t, game.PlayerB,
		"OXXOOO_",
		"OOOXXOX",
		"OXOOOXO",
		"XOXXXOO",
		"XXOOXXX",
		"XXOXOXX",
	)
}

func play(t *testing.T, state game.GameState, columns ...int) game.GameState {
	t.Helper()
	for _, col := range columns {
		next, err := state.Play(col)
		require.NoError(t, err)
		state = next
	}
	return state
}

func TestSearchErrors(t *testing.T) {
	t.Run("rejecting a terminal root", func(t *testing.T) {
		root := play(t, game.NewGameState(), 0, 6, 1, 6, 2, 6, 3)
		m := NewMCTS(WithSeed(1))

		_, err := m.Search(NewTree(root))

		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})

	t.Run("rejecting a full board", func(t *testing.T) {
		root := play(t, singleColumn(t), 6, 6, 6, 6, 6, 6)
		require.Empty(t, root.LegalActions())
		m := NewMCTS(WithSeed(1))

		_, err := m.Search(NewTree(root))

		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})

	t.Run("reporting an empty budget", func(t *testing.T) {
		m := NewMCTS(WithSeed(1), WithIterations(0))

		_, err := m.Search(NewTree(game.NewGameState()))

		require.ErrorIs(t, err, ErrNoChildren)
	})
}

func TestSearchSingleAction(t *testing.T) {
	for _, variant := range []Variant{Reference, Corrected} {
		for _, iterations := range []int{1, 25} {
			root := singleColumn(t)
			expected := play(t, root, 6)
			m := NewMCTS(WithSeed(7), WithVariant(variant), WithIterations(iterations))

			got, err := m.Search(NewTree(root))

			require.NoError(t, err)
			require.Equal(t, expected, got, "%s with %d iterations should return the only move", variant, iterations)
		}
	}
}

func TestSearchVisitAccounting(t *testing.T) {
	for _, variant := range []Variant{Reference, Corrected} {
		t.Run(variant.String(), func(t *testing.T) {
			const iterations = 200
			tree := NewTree(game.NewGameState())
			m := NewMCTS(WithSeed(3), WithVariant(variant), WithIterations(iterations), WithMetrics())

			metric, err := m.Simulate(tree)
			require.NoError(t, err)

			root := tree.Root()
			require.Equal(t, iterations, metric.Episodes, "Every iteration should run")
			require.Equal(t, tree.Len(), metric.Nodes)
			if variant == Reference {
				require.Equal(t, metric.Episodes-metric.Skipped, root.Visits,
					"Terminal frontier iterations should not reach the root")
			} else {
				require.Equal(t, iterations, root.Visits, "Every iteration should reach the root")
			}

			sum := 0
			for _, c := range root.Children {
				sum += tree.Node(c).Visits
			}
			require.Equal(t, root.Visits, sum, "Every backup should pass through one root child")
			require.LessOrEqual(t, sum, iterations)

			for i := 0; i < tree.Len(); i++ {
				node := tree.Node(i)
				children := 0
				for _, c := range node.Children {
					children += tree.Node(c).Visits
					require.Equal(t, i, tree.Node(c).Parent, "Child should point back to its parent")
				}
				require.GreaterOrEqual(t, node.Visits, children, "Node %d should have at least its children's visits", i)
			}

			best, ok := tree.BestChild()
			require.True(t, ok)
			require.GreaterOrEqual(t, tree.Node(best).Visits, 1)
		})
	}
}

func TestReferenceSearch(t *testing.T) {
	t.Run("keeping a single root child once expanded", func(t *testing.T) {
		tree := NewTree(game.NewGameState())
		m := NewMCTS(WithSeed(11), WithIterations(100))

		_, err := m.Simulate(tree)
		require.NoError(t, err)

		require.Len(t, tree.Root().Children, 1, "Descent should never stop at the root again")
	})

	t.Run("skipping terminal frontier nodes", func(t *testing.T) {
		tree := NewTree(winningColumn(t))
		m := NewMCTS(WithSeed(5), WithIterations(10), WithMetrics())

		metric, err := m.Simulate(tree)
		require.NoError(t, err)

		root := tree.Root()
		require.Equal(t, 1, root.Visits, "Only the expanding iteration should back up")
		require.Equal(t, 9, metric.Skipped)
		require.Equal(t, 1, metric.Playouts)
		require.Len(t, root.Children, 1)
		child := tree.Node(root.Children[0])
		require.True(t, child.State.IsTerminal())
		require.Equal(t, game.Win, child.Value)
		require.Equal(t, game.Win, root.Value, "Reward should be added unchanged at every level")
	})

	t.Run("reproducing the same tree from the same seed", func(t *testing.T) {
		first := NewTree(game.NewGameState())
		second := NewTree(game.NewGameState())

		_, err := NewMCTS(WithSeed(99), WithIterations(150)).Simulate(first)
		require.NoError(t, err)
		_, err = NewMCTS(WithSeed(99), WithIterations(150)).Simulate(second)
		require.NoError(t, err)

		require.Equal(t, first, second, "Seeded searches should be deterministic")
	})
}

func TestCorrectedSearch(t *testing.T) {
	t.Run("backing up terminal frontier nodes", func(t *testing.T) {
		tree := NewTree(winningColumn(t))
		m := NewMCTS(WithSeed(5), WithVariant(Corrected), WithIterations(10), WithMetrics())

		metric, err := m.Simulate(tree)
		require.NoError(t, err)

		root := tree.Root()
		require.Equal(t, 10, root.Visits)
		require.Equal(t, 9, metric.Skipped)
		child := tree.Node(root.Children[0])
		require.Equal(t, 10*game.Win, child.Value, "Winner moved into the child")
		require.Equal(t, 10*game.Loss, root.Value, "Loser moved into the root")
	})

	t.Run("expanding every root action once", func(t *testing.T) {
		tree := NewTree(game.NewGameState())
		m := NewMCTS(WithSeed(2), WithVariant(Corrected), WithIterations(50))

		_, err := m.Simulate(tree)
		require.NoError(t, err)

		seen := map[int]bool{}
		for _, c := range tree.Root().Children {
			action := tree.Node(c).Action
			require.False(t, seen[action], "Action %d expanded twice", action)
			seen[action] = true
		}
		require.Len(t, seen, game.Columns)
	})

	t.Run("finding an immediate win", func(t *testing.T) {
		// PlayerA holds the bottom row from column 0 to 2
		root := play(t, game.NewGameState(), 0, 6, 1, 6, 2, 5)
		wins := 0
		for seed := uint64(1); seed <= 10; seed++ {
			m := NewMCTS(WithSeed(seed), WithVariant(Corrected), WithIterations(50))

			got, err := m.Search(NewTree(root))
			require.NoError(t, err)

			if got.IsTerminal() && got.Winner() == game.PlayerA {
				wins++
			}
		}
		require.GreaterOrEqual(t, wins, 8, "Search should usually play the winning column")
	})
}

func TestExpand(t *testing.T) {
	t.Run("repeating an action in the reference variant", func(t *testing.T) {
		tree := NewTree(singleColumn(t))
		m := NewMCTS(WithSeed(1))

		first, err := m.expand(tree, 0)
		require.NoError(t, err)
		second, err := m.expand(tree, 0)
		require.NoError(t, err)

		require.NotEqual(t, first, second)
		require.Equal(t, 6, tree.Node(first).Action)
		require.Equal(t, 6, tree.Node(second).Action, "Reference expansion does not track tried actions")
		require.Len(t, tree.Root().Children, 2)
	})

	t.Run("refusing a tried action in the corrected variant", func(t *testing.T) {
		tree := NewTree(singleColumn(t))
		m := NewMCTS(WithSeed(1), WithVariant(Corrected))

		_, err := m.expand(tree, 0)
		require.NoError(t, err)
		_, err = m.expand(tree, 0)

		require.ErrorIs(t, err, game.ErrNoLegalMoves)
		require.Len(t, tree.Root().Children, 1)
	})
}

func TestBackup(t *testing.T) {
	// PlayerA wins the bottom row
	terminal := play(t, game.NewGameState(), 0, 6, 1, 6, 2, 6, 3)

	build := func() (*Tree, int, int) {
		tree := NewTree(game.NewGameState())
		child := tree.addChild(0, 0, play(t, game.NewGameState(), 0))
		grandChild := tree.addChild(child, 6, play(t, game.NewGameState(), 0, 6))
		return tree, child, grandChild
	}

	t.Run("adding the raw reward at every level", func(t *testing.T) {
		tree, child, grandChild := build()
		m := NewMCTS(WithSeed(1))

		m.backup(tree, grandChild, terminal)

		for _, i := range []int{0, child, grandChild} {
			require.Equal(t, 1, tree.Node(i).Visits)
			require.Equal(t, game.Win, tree.Node(i).Value)
		}
	})

	t.Run("converting the reward to each mover", func(t *testing.T) {
		tree, child, grandChild := build()
		m := NewMCTS(WithSeed(1), WithVariant(Corrected))

		m.backup(tree, grandChild, terminal)

		require.Equal(t, game.Loss, tree.Node(grandChild).Value, "PlayerB moved into the grandchild")
		require.Equal(t, game.Win, tree.Node(child).Value, "PlayerA moved into the child")
		require.Equal(t, game.Loss, tree.Node(0).Value, "Root is credited to PlayerB")
		for _, i := range []int{0, child, grandChild} {
			require.Equal(t, 1, tree.Node(i).Visits)
		}
	})
}

func TestRollout(t *testing.T) {
	t.Run("playing to a terminal state", func(t *testing.T) {
		m := NewMCTS(WithSeed(4))

		got, err := rollout(game.NewGameState(), m.rng)

		require.NoError(t, err)
		require.True(t, got.IsTerminal())
	})

	t.Run("returning a terminal state unchanged", func(t *testing.T) {
		terminal := play(t, game.NewGameState(), 0, 6, 1, 6, 2, 6, 3)
		m := NewMCTS(WithSeed(4))

		got, err := rollout(terminal, m.rng)

		require.NoError(t, err)
		require.Equal(t, terminal, got)
	})
}

func TestNewMCTS(t *testing.T) {
	t.Run("using the reference defaults", func(t *testing.T) {
		m := NewMCTS()

		require.Equal(t, DefaultIterations, m.iterations)
		require.Equal(t, Reference, m.Variant())
		require.NotNil(t, m.rng, "Generator should be seeded from the clock")
	})

	t.Run("panicking without a generator", func(t *testing.T) {
		require.Panics(t, func() {
			NewMCTS(WithRand(nil))
		})
	})

	t.Run("stopping at the wall clock budget", func(t *testing.T) {
		m := NewMCTS(WithSeed(1), WithIterations(1<<30), WithDuration(20*time.Millisecond), WithMetrics())

		metric, err := m.Simulate(NewTree(game.NewGameState()))

		require.NoError(t, err)
		require.Less(t, metric.Episodes, 1<<30)
		require.Positive(t, metric.Episodes)
	})
}

func TestParseVariant(t *testing.T) {
	for _, variant := range []Variant{Reference, Corrected} {
		got, err := ParseVariant(variant.String())
		require.NoError(t, err)
		require.Equal(t, variant, got)
	}

	_, err := ParseVariant("minimax")
	require.Error(t, err)
}
