package searcher

import (
	"context"

	"draughts/game"

	"github.com/rs/zerolog/log"
)

// MTDF finds the minimax value of a position with a sequence of null-window
// alpha-beta searches that share a transposition table.
type MTDF struct {
	options
	table *TranspositionTable
}

func NewMTDF(opts ...Option) *MTDF {
	m := &MTDF{options: defaultOptions()}
	for _, option := range opts {
		option(&m.options)
	}
	m.table = NewTranspositionTable(m.tableBits)
	return m
}

func (m *MTDF) Table() *TranspositionTable {
	return m.table
}

// BestMove returns nil when color has no legal move.
func (m *MTDF) BestMove(pos game.Position, color game.Color, depth int) game.Move {
	return m.Search(context.Background(), pos, color, depth).Move
}

// Search runs iterative deepening from one ply up to depth. Cancelling ctx
// stops the search after the current iteration; the first iteration always
// completes.
func (m *MTDF) Search(ctx context.Context, pos game.Position, color game.Color, depth int) Result {
	depth = clampDepth(depth)
	m.metrics.Start("mtdf", depth)
	lookups, hits := m.table.Stats()

	children := m.rules.LegalMoves(pos, color)
	if len(children) == 0 {
		log.Debug().Str("color", color.String()).Msg("no legal moves")
		return Result{Score: -WinScore, Metrics: m.metrics.Complete(-WinScore)}
	}

	first := depth
	if m.iterative {
		first = 1
	}

	var result Result
	guess := 0
	for d := first; d <= depth; d++ {
		if d > first && ctx.Err() != nil {
			log.Debug().Int("reached", result.Depth).Msg("search cancelled")
			break
		}
		score, best := m.mtdf(children, color, d, guess)
		guess = score
		promote(children, best)
		result = Result{Move: children[0].LastMove(), Score: score, Depth: d}
		m.metrics.AddIteration(d)
		log.Debug().Int("depth", d).Int("score", score).
			Str("move", result.Move.String()).Msg("iteration-complete")
	}

	nowLookups, nowHits := m.table.Stats()
	m.metrics.SetTableStats(nowLookups-lookups, nowHits-hits)
	result.Metrics = m.metrics.Complete(result.Score)
	return result
}

// mtdf converges on the value of the root at depth, starting from guess. It
// returns the value and the index of a child that achieves it.
func (m *MTDF) mtdf(children []game.Position, color game.Color, depth, guess int) (int, int) {
	g := guess
	lower, upper := -Infinity, Infinity
	best := 0
	for lower < upper {
		beta := g
		if g == lower {
			beta = g + 1
		}
		m.metrics.AddPass()
		var idx int
		g, idx = m.searchRoot(children, color, depth, beta-1, beta)
		if g < beta {
			upper = g
		} else {
			lower = g
			best = idx
		}
	}
	return g, best
}

// searchRoot never consults the table for the root itself, so every pass
// reports which child produced its bound.
func (m *MTDF) searchRoot(children []game.Position, color game.Color, depth, alpha, beta int) (int, int) {
	m.metrics.AddNode()
	g, best := -Infinity, 0
	a := alpha
	for i, child := range children {
		v := -m.alphaBeta(child, color.Opponent(), depth-1, -beta, -a)
		if v > g {
			g, best = v, i
		}
		if g >= beta {
			break
		}
		a = max(a, g)
	}
	return g, best
}

func (m *MTDF) alphaBeta(pos game.Position, color game.Color, depth, alpha, beta int) int {
	m.metrics.AddNode()
	key := tableKey{board: pos.Board(), color: color, depth: depth}
	if lower, upper, ok := m.table.lookup(key); ok {
		if lower >= beta || lower == upper {
			return lower
		}
		if upper <= alpha {
			return upper
		}
		alpha = max(alpha, lower)
		beta = min(beta, upper)
	}

	if depth == 0 {
		g := evaluate(&m.options, pos, color)
		m.table.store(key, g, g)
		return g
	}

	children := m.rules.LegalMoves(pos, color)
	if len(children) == 0 {
		m.table.store(key, -WinScore, -WinScore)
		return -WinScore
	}

	g := -Infinity
	a := alpha
	for _, child := range children {
		g = max(g, -m.alphaBeta(child, color.Opponent(), depth-1, -beta, -a))
		if g >= beta {
			break
		}
		a = max(a, g)
	}

	switch {
	case g <= alpha:
		m.table.store(key, -Infinity, g)
	case g >= beta:
		m.table.store(key, g, Infinity)
	default:
		m.table.store(key, g, g)
	}
	return g
}

// promote moves children[i] to the front, keeping the order of the rest.
func promote(children []game.Position, i int) {
	if i <= 0 {
		return
	}
	best := children[i]
	copy(children[1:i+1], children[:i])
	children[0] = best
}
