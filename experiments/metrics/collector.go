package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Iterations   int
	Budget       time.Duration
	Duration     time.Duration
	Cutoff       int
	Episodes     int
	FullPlayouts int
	TreeSize     int
	IsTreeReset  bool
}

type MoveMetric struct {
	Step     int
	Player   int    // Player ID
	Move     string // structured move played
	Strategy string // "mcts", "shortest-path", ...
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 when truncated
	PGN            string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(iterations int, budget time.Duration, cutoff int)
	SetTreeReset(value bool)
	SetTreeSize(size int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	iterations   int
	budget       time.Duration
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	treeSize     atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize.Store(int32(size))
}

func (m *collector) Start(iterations int, budget time.Duration, cutoff int) {
	m.startTime = time.Now()
	m.iterations = iterations
	m.budget = budget
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations:   m.iterations,
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Cutoff:       m.cutoff,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TreeSize:     int(m.treeSize.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int, budget time.Duration, cutoff int) {}
func (m *dummyCollector) SetTreeReset(value bool)                                {}
func (m *dummyCollector) SetTreeSize(size int)                                   {}
func (m *dummyCollector) AddFullPlayout()                                        {}
func (m *dummyCollector) AddEpisode()                                            {}
func (m *dummyCollector) Complete() SearchMetric                                 { return SearchMetric{} }
