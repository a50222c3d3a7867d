package agent

import (
	"context"

	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/searcher"
)

type evaluationAgent struct {
	searcher searcher.Searcher
	depth    int
}

// NewEvaluationAgent returns an agent that plays the best move found by s at
// the given depth.
func NewEvaluationAgent(s searcher.Searcher, depth int) Agent {
	return evaluationAgent{searcher: s, depth: depth}
}

func (a evaluationAgent) FindMove(ctx context.Context, pos game.Position, color game.Color) (game.Move, metrics.SearchMetric) {
	result := a.searcher.Search(ctx, pos, color, a.depth)
	return result.Move, result.Metrics
}
