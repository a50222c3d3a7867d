package metrics

import (
	"time"
)

type SearchMetric struct {
	Searcher     string
	Depth        int // Requested depth in plies
	Reached      int // Deepest completed iteration
	Duration     time.Duration
	Nodes        int
	Passes       int // Null-window passes
	Iterations   int
	TableLookups int
	TableHits    int
	Score        int
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" for a draw
	Reason         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers counters for one search at a time. Searches are
// single-threaded, so the counters are plain ints.
type Collector interface {
	Start(searcher string, depth int)
	AddNode()
	AddPass()
	AddIteration(depth int)
	SetTableStats(lookups, hits int)
	Complete(score int) SearchMetric
}

type collector struct {
	searcher   string
	depth      int
	reached    int
	startTime  time.Time
	nodes      int
	passes     int
	iterations int
	lookups    int
	hits       int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(searcher string, depth int) {
	*m = collector{searcher: searcher, depth: depth, startTime: time.Now()}
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddPass() {
	m.passes++
}

func (m *collector) AddIteration(depth int) {
	m.iterations++
	m.reached = depth
}

func (m *collector) SetTableStats(lookups, hits int) {
	m.lookups = lookups
	m.hits = hits
}

func (m *collector) Complete(score int) SearchMetric {
	return SearchMetric{
		Searcher:     m.searcher,
		Depth:        m.depth,
		Reached:      m.reached,
		Duration:     time.Since(m.startTime),
		Nodes:        m.nodes,
		Passes:       m.passes,
		Iterations:   m.iterations,
		TableLookups: m.lookups,
		TableHits:    m.hits,
		Score:        score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(searcher string, depth int) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddPass()                         {}
func (m *dummyCollector) AddIteration(depth int)           {}
func (m *dummyCollector) SetTableStats(lookups, hits int)  {}
func (m *dummyCollector) Complete(score int) SearchMetric  { return SearchMetric{Score: score} }
