package searcher

import (
	"context"

	"draughts/game"
)

// AlphaBeta is a full-width negamax search without memory. It is slower than
// MTDF but returns the same value, which makes it a useful baseline.
type AlphaBeta struct {
	options
}

func NewAlphaBeta(opts ...Option) *AlphaBeta {
	a := &AlphaBeta{options: defaultOptions()}
	for _, option := range opts {
		option(&a.options)
	}
	return a
}

func (a *AlphaBeta) BestMove(pos game.Position, color game.Color, depth int) game.Move {
	return a.Search(context.Background(), pos, color, depth).Move
}

// Search ignores ctx once started; depth is always searched in full.
func (a *AlphaBeta) Search(_ context.Context, pos game.Position, color game.Color, depth int) Result {
	depth = clampDepth(depth)
	a.metrics.Start("alphabeta", depth)

	children := a.rules.LegalMoves(pos, color)
	if len(children) == 0 {
		return Result{Score: -WinScore, Metrics: a.metrics.Complete(-WinScore)}
	}

	g, best := -Infinity, 0
	alpha := -Infinity
	a.metrics.AddNode()
	for i, child := range children {
		v := -a.negamax(child, color.Opponent(), depth-1, -Infinity, -alpha)
		if v > g {
			g, best = v, i
		}
		alpha = max(alpha, g)
	}
	a.metrics.AddIteration(depth)

	return Result{
		Move:    children[best].LastMove(),
		Score:   g,
		Depth:   depth,
		Metrics: a.metrics.Complete(g),
	}
}

func (a *AlphaBeta) negamax(pos game.Position, color game.Color, depth, alpha, beta int) int {
	a.metrics.AddNode()
	if depth == 0 {
		return evaluate(&a.options, pos, color)
	}
	children := a.rules.LegalMoves(pos, color)
	if len(children) == 0 {
		return -WinScore
	}
	g := -Infinity
	for _, child := range children {
		g = max(g, -a.negamax(child, color.Opponent(), depth-1, -beta, -alpha))
		if g >= beta {
			break
		}
		alpha = max(alpha, g)
	}
	return g
}
