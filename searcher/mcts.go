package searcher

import (
	"errors"
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrNoChildren is returned by Search when the budget ran out before the
// root was expanded.
var ErrNoChildren = errors.New("search expanded no children")

type Option func(mcts *MCTS)

// MCTS runs searches over a Tree. It owns a random generator and is not safe
// for concurrent use.
type MCTS struct {
	iterations  int
	duration    time.Duration
	variant     Variant
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations >= 0 {
			m.iterations = iterations
		}
	}
}

// WithDuration stops a search early once the wall clock budget is spent.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithVariant(variant Variant) Option {
	return func(m *MCTS) {
		m.variant = variant
	}
}

// WithExploration sets the UCT constant of the Corrected variant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng == nil {
			panic("search requires a random generator")
		}
		m.rng = rng
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations:  DefaultIterations,
		variant:     Reference,
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		seed := uint64(time.Now().UnixNano())
		log.Debug().Uint64("seed", seed).Msg("seeding search generator from the clock")
		m.rng = rand.New(rand.NewSource(seed))
	}
	return m
}

func (m *MCTS) Variant() Variant {
	return m.variant
}

// Search grows tree and returns the state of the root's most visited child.
func (m *MCTS) Search(tree *Tree) (game.GameState, error) {
	if _, err := m.Simulate(tree); err != nil {
		return game.GameState{}, err
	}
	best, ok := tree.BestChild()
	if !ok {
		return game.GameState{}, ErrNoChildren
	}
	return tree.Node(best).State, nil
}

// Simulate runs the iteration budget on tree and reports what it did.
func (m *MCTS) Simulate(tree *Tree) (metrics.SearchMetric, error) {
	root := tree.Root().State
	if root.IsTerminal() || len(root.LegalActions()) == 0 {
		return metrics.SearchMetric{}, fmt.Errorf("cannot search from root: %w", game.ErrNoLegalMoves)
	}

	m.metrics.Start(m.variant.String(), m.iterations)
	err := m.iterate(tree)
	m.metrics.SetNodes(tree.Len())
	metric := m.metrics.Complete()
	if err != nil {
		return metric, err
	}

	log.Debug().
		Str("variant", m.variant.String()).
		Int("root_visits", tree.Root().Visits).
		Int("nodes", tree.Len()).
		Msg("search complete")
	return metric, nil
}

func (m *MCTS) iterate(tree *Tree) error {
	start := time.Now()
	for i := 0; i < m.iterations; i++ {
		if m.duration > 0 && time.Since(start) >= m.duration {
			break
		}
		if err := m.simulate(tree); err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		m.metrics.AddEpisode()
	}
	return nil
}

func (m *MCTS) simulate(tree *Tree) error {
	leaf := m.selects(tree)

	if tree.Node(leaf).State.IsTerminal() {
		m.metrics.AddSkipped()
		if m.variant == Corrected {
			m.backup(tree, leaf, tree.Node(leaf).State)
		}
		return nil
	}

	child, err := m.expand(tree, leaf)
	if err != nil {
		return err
	}

	terminal, err := rollout(tree.Node(child).State, m.rng)
	if err != nil {
		return err
	}
	m.metrics.AddPlayout()

	m.backup(tree, child, terminal)
	return nil
}

// selects descends from the root to the frontier node.
func (m *MCTS) selects(tree *Tree) int {
	i := 0
	for len(tree.Node(i).Children) > 0 {
		if m.variant == Corrected {
			if len(tree.untried(i)) > 0 {
				return i
			}
			i = tree.pickUCT(i, m.exploration*m.exploration)
			continue
		}
		i = tree.pickWeighted(i)
	}
	return i
}

// expand appends one child for a random action of node i. Reference draws
// from every legal action, so an action can be expanded twice.
func (m *MCTS) expand(tree *Tree, i int) (int, error) {
	var actions []int
	if m.variant == Corrected {
		actions = tree.untried(i)
	} else {
		actions = tree.Node(i).State.LegalActions()
	}
	if len(actions) == 0 {
		return 0, fmt.Errorf("cannot expand node %d: %w", i, game.ErrNoLegalMoves)
	}

	action := actions[m.rng.Intn(len(actions))]
	state, err := tree.Node(i).State.Play(action)
	if err != nil {
		return 0, fmt.Errorf("cannot expand node %d: %w", i, err)
	}
	return tree.addChild(i, action, state), nil
}

// rollout plays uniformly random moves until the game ends.
func rollout(state game.GameState, rng *rand.Rand) (game.GameState, error) {
	for !state.IsTerminal() {
		moves := state.LegalActions()
		if len(moves) == 0 {
			return state, fmt.Errorf("rollout: %w", game.ErrNoLegalMoves)
		}
		next, err := state.Play(moves[rng.Intn(len(moves))])
		if err != nil {
			return state, fmt.Errorf("rollout: %w", err)
		}
		state = next
	}
	return state, nil
}

// backup walks from node i to the root. Reference adds the terminal reward
// as is; Corrected converts it to the player who moved into each node.
func (m *MCTS) backup(tree *Tree, i int, terminal game.GameState) {
	for i != NoParent {
		node := tree.Node(i)
		node.Visits++
		if m.variant == Corrected {
			node.Value += terminal.RewardFor(node.State.LastMover())
		} else {
			node.Value += terminal.Reward()
		}
		i = node.Parent
	}
}
