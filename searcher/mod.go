package searcher

import (
	"context"

	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/meta"
)

const (
	// WinScore is the value of a position whose side to move is left without
	// a legal move, negated. It dominates every static score.
	WinScore = 1 << 20
	Infinity = WinScore + 1
)

// Result of one search from the root.
type Result struct {
	Move    game.Move // nil when the side to move has no legal move
	Score   int       // from the side to move's point of view
	Depth   int       // deepest completed iteration
	Metrics metrics.SearchMetric
}

// Searcher picks a move for color at the given ply depth.
type Searcher interface {
	Search(ctx context.Context, pos game.Position, color game.Color, depth int) Result
}

type Option func(o *options)

type options struct {
	scorer    game.Scorer
	rules     game.Rules
	tableBits int
	iterative bool
	metrics   metrics.Collector
}

func defaultOptions() options {
	return options{
		scorer:    game.NewPlacementScorer(game.NewMaterialScorer()),
		rules:     game.NewStandardRules(),
		tableBits: meta.DEFAULT_TABLE_BITS,
		iterative: true,
		metrics:   metrics.NewDummyCollector(),
	}
}

func WithScorer(scorer game.Scorer) Option {
	return func(o *options) {
		if scorer != nil {
			o.scorer = scorer
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(o *options) {
		o.rules = rules
	}
}

// WithTableBits sizes the transposition table to 2^bits entries.
func WithTableBits(bits int) Option {
	return func(o *options) {
		if bits > 0 {
			o.tableBits = bits
		}
	}
}

// WithoutIterativeDeepening searches the requested depth directly with a
// first guess of 0.
func WithoutIterativeDeepening() Option {
	return func(o *options) {
		o.iterative = false
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}

// evaluate scores a leaf from the side to move's point of view. A side
// without moves has lost.
func evaluate(o *options, pos game.Position, color game.Color) int {
	if !o.rules.HasLegalMove(pos, color) {
		return -WinScore
	}
	return o.scorer.Score(pos, color) - o.scorer.Score(pos, color.Opponent())
}

func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	return depth
}
