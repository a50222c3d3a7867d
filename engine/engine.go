package engine

import (
	"context"

	"draughts/experiments/metrics"
)

type Engine interface {
	// Run plays a game till it is settled or ctx is cancelled
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
