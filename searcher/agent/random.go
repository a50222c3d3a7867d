package agent

import (
	"context"

	"draughts/experiments/metrics"
	"draughts/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rules game.Rules
	rng   *rand.Rand
}

// NewRandomAgent returns an agent that picks uniformly among the legal moves.
// Agents with the same seed play the same moves.
func NewRandomAgent(seed uint64, rules game.Rules) Agent {
	return &randomAgent{rules: rules, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, pos game.Position, color game.Color) (game.Move, metrics.SearchMetric) {
	children := a.rules.LegalMoves(pos, color)
	if len(children) == 0 {
		return nil, metrics.SearchMetric{Searcher: "random"}
	}
	return children[a.rng.Intn(len(children))].LastMove(), metrics.SearchMetric{Searcher: "random"}
}
