package agent

import (
	"context"

	"draughts/experiments/metrics"
	"draughts/game"
)

type Agent interface {
	// FindMove returns the move to play for color and the metrics of the search
	// that produced it (if collected). A nil move resigns.
	FindMove(ctx context.Context, pos game.Position, color game.Color) (game.Move, metrics.SearchMetric)
}
