package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Depth      int
	Duration   time.Duration
	Nodes      int // Positions expanded through the cache
	Leaves     int // Positions scored by the evaluation
	Revisits   int // Cache hits that deepened a stored entry
	Covered    int // Cache hits already explored at least as deep
	Skipped    int // Candidates dropped because their continuation was covered
}

type MoveMetric struct {
	Step   int
	Player string // Side that moved
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // Empty on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, depth int)
	AddNode()
	AddLeaf()
	AddRevisit()
	AddCovered()
	AddSkipped()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	revisits   atomic.Int64
	covered    atomic.Int64
	skipped    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start clears the counters of the previous search.
func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.revisits.Store(0)
	m.covered.Store(0)
	m.skipped.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddRevisit() {
	m.revisits.Add(1)
}

func (m *collector) AddCovered() {
	m.covered.Add(1)
}

func (m *collector) AddSkipped() {
	m.skipped.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Revisits:   int(m.revisits.Load()),
		Covered:    int(m.covered.Load()),
		Skipped:    int(m.skipped.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddLeaf()                    {}
func (m *dummyCollector) AddRevisit()                 {}
func (m *dummyCollector) AddCovered()                 {}
func (m *dummyCollector) AddSkipped()                 {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
