package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	TimeLimit    time.Duration
	Exploration  float64
	Duration     time.Duration
	Steps        int // loop steps, including deadline and notice checks
	Playouts     int
	Expansions   int
	TerminalHits int
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player int // Player index
	Found  bool
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // Player index
	Winner         int // Player index, 0 on a draw or unfinished game
	Outcome        string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	SkippedTurns   int
}

type Collector interface {
	Start(now time.Time, timeLimit time.Duration, exploration float64)
	AddStep()
	AddPlayout()
	AddExpansion(children int)
	AddTerminal()
	Complete(now time.Time) SearchMetric
}

type collector struct {
	timeLimit    time.Duration
	exploration  float64
	startTime    time.Time
	steps        atomic.Int32
	playouts     atomic.Int32
	expansions   atomic.Int32
	terminalHits atomic.Int32
	treeSize     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(now time.Time, timeLimit time.Duration, exploration float64) {
	m.startTime = now
	m.timeLimit = timeLimit
	m.exploration = exploration
	m.steps.Store(0)
	m.playouts.Store(0)
	m.expansions.Store(0)
	m.terminalHits.Store(0)
	m.treeSize.Store(1) // root
}

func (m *collector) AddStep() {
	m.steps.Add(1)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddExpansion(children int) {
	m.expansions.Add(1)
	m.treeSize.Add(int32(children))
}

func (m *collector) AddTerminal() {
	m.terminalHits.Add(1)
}

func (m *collector) Complete(now time.Time) SearchMetric {
	return SearchMetric{
		TimeLimit:    m.timeLimit,
		Exploration:  m.exploration,
		Duration:     now.Sub(m.startTime),
		Steps:        int(m.steps.Load()),
		Playouts:     int(m.playouts.Load()),
		Expansions:   int(m.expansions.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		TreeSize:     int(m.treeSize.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(now time.Time, timeLimit time.Duration, exploration float64) {}
func (m *dummyCollector) AddStep()                                                          {}
func (m *dummyCollector) AddPlayout()                                                       {}
func (m *dummyCollector) AddExpansion(children int)                                         {}
func (m *dummyCollector) AddTerminal()                                                      {}
func (m *dummyCollector) Complete(now time.Time) SearchMetric                               { return SearchMetric{} }
