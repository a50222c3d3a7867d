package engine

import (
	"context"
	"errors"
	"time"

	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/gamemaster"
	"draughts/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Cancelled is the game reason when the context ends the game early.
const Cancelled = "cancelled"

type Update struct {
	Move     game.Move
	Position game.Position
	Hash     game.StateHash
}

// Local plays a game between two in-process agents.
type Local struct {
	Game    *gamemaster.Game
	Agents  [2]agent.Agent // indexed by game.Color
	Updates []Update
}

var _ Engine = (*Local)(nil)

func NewLocal(g *gamemaster.Game, white, black agent.Agent) *Local {
	if white == nil || black == nil {
		panic("need an agent for each color")
	}
	return &Local{
		Game:   g,
		Agents: [2]agent.Agent{game.White: white, game.Black: black},
	}
}

// Run executes the game loop until the game is settled.
func (e *Local) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric) {
	start := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Game.ToMove().String(),
		StartTime:      start,
	}
	log.Info().Msgf("player %s is starting", e.Game.ToMove())

	var moveMetrics []metrics.MoveMetric
	for !e.Game.Over() {
		if ctx.Err() != nil {
			log.Warn().Int("turn", e.Game.Turn()).Msg("game cancelled")
			break
		}
		color := e.Game.ToMove()
		move, searchMetric := e.Agents[color].FindMove(ctx, e.Game.Position(), color)
		if move == nil {
			log.Info().Msgf("player %s resigns", color)
			e.Game.Resign()
			break
		}

		move = e.play(move)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.Game.Turn(),
			Player:       color.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		e.Updates = append(e.Updates, Update{
			Move:     move,
			Position: e.Game.Position(),
			Hash:     e.Game.Position().Hash(),
		})
		log.Debug().Int("turn", e.Game.Turn()).Str("player", color.String()).
			Str("move", move.String()).Int("score", searchMetric.Score).Msg("move played")
	}

	outcome := e.Game.Outcome()
	gameMetric.Winner = outcome.WinnerName()
	gameMetric.Reason = string(outcome.Reason)
	if !outcome.Over {
		gameMetric.Reason = Cancelled
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(start)
	gameMetric.TotalMoves = e.Game.Turn()
	log.Info().Msgf("game over after %d plies: %s", e.Game.Turn(), outcome)

	return gameMetric.Winner, gameMetric, moveMetrics
}

// play applies move, or the first legal move if the agent returned an
// illegal one.
func (e *Local) play(move game.Move) game.Move {
	err := e.Game.Play(move)
	if err == nil {
		return move
	}
	if !errors.Is(err, gamemaster.ErrIllegalMove) {
		panic(err)
	}

	fallback := e.Game.LegalMoves()
	if len(fallback) == 0 {
		panic("No legal moves at all!")
	}
	log.Warn().Err(err).Str("fallback", fallback[0].String()).Msg("agent returned an illegal move")
	if err := e.Game.Play(fallback[0]); err != nil {
		panic(err)
	}
	return fallback[0]
}
