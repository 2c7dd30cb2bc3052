package metrics

import (
	"sync/atomic"
	"time"

	"connect4/game"
)

type SearchMetric struct {
	Variant    string
	Iterations int // Iteration budget
	Duration   time.Duration
	Episodes   int // Iterations actually run
	Skipped    int // Iterations that ended on a terminal frontier node
	Playouts   int
	Nodes      int
}

type MoveMetric struct {
	Step   int
	Player game.Cell
	Action int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Cell
	Winner         game.Cell // Empty for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(variant string, iterations int)
	AddEpisode()
	AddSkipped()
	AddPlayout()
	SetNodes(nodes int)
	Complete() SearchMetric
}

type collector struct {
	variant    string
	iterations int
	startTime  time.Time
	episodes   atomic.Int32
	skipped    atomic.Int32
	playouts   atomic.Int32
	nodes      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(variant string, iterations int) {
	m.variant = variant
	m.iterations = iterations
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.skipped.Store(0)
	m.playouts.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddSkipped() {
	m.skipped.Add(1)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) SetNodes(nodes int) {
	m.nodes.Store(int32(nodes))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Variant:    m.variant,
		Iterations: m.iterations,
		Duration:   time.Since(m.startTime),
		Episodes:   int(m.episodes.Load()),
		Skipped:    int(m.skipped.Load()),
		Playouts:   int(m.playouts.Load()),
		Nodes:      int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(variant string, iterations int) {}
func (m *dummyCollector) AddEpisode()                          {}
func (m *dummyCollector) AddSkipped()                          {}
func (m *dummyCollector) AddPlayout()                          {}
func (m *dummyCollector) SetNodes(nodes int)                   {}
func (m *dummyCollector) Complete() SearchMetric               { return SearchMetric{} }
