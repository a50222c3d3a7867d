package experiments

import (
	"context"
	"errors"
	"fmt"

	"draughts/engine"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/gamemaster"
	"draughts/searcher"
	"draughts/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var ErrBadMatchUp = errors.New("a match up needs exactly two agent configs")

// Results of a tournament. Points count 1 per win and 1/2 per draw.
type Results struct {
	Dir    string
	Games  []metrics.GameRecord
	Points map[int]float64 // by AgentConfig.ID
}

// NewAgent builds a fresh agent for config. Every game gets its own agents, so
// concurrent games never share a transposition table.
func NewAgent(config metrics.AgentConfig, rules game.Rules, gameID int) (agent.Agent, error) {
	scorer, err := game.NewScorer(config.Scorer)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithScorer(scorer),
		searcher.WithRules(rules),
		searcher.WithMetrics(),
	}
	if config.TableBits > 0 {
		options = append(options, searcher.WithTableBits(config.TableBits))
	}

	switch config.Searcher {
	case "mtdf", "":
		return agent.NewEvaluationAgent(searcher.NewMTDF(options...), config.Depth), nil
	case "alphabeta":
		return agent.NewEvaluationAgent(searcher.NewAlphaBeta(options...), config.Depth), nil
	case "random":
		return agent.NewRandomAgent(config.Seed+uint64(gameID), rules), nil
	default:
		return nil, fmt.Errorf("unknown searcher %q", config.Searcher)
	}
}

// RunTournament plays games between the two configs of every match up, at most
// parallel games at a time, alternating which side moves first. Records are
// written under baseDir/name.
func RunTournament(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig,
	games, parallel int, baseDir string, rules game.Rules, maxTurns int) (*Results, error) {
	for _, matchUp := range matchUps {
		if len(matchUp) != 2 {
			return nil, ErrBadMatchUp
		}
	}

	log.Info().Msgf("starting %s tournament: %d match ups, %d games each", name, len(matchUps), games)

	gameRecords := make([]metrics.GameRecord, len(matchUps)*games)
	moveRecords := make([][]metrics.MoveRecord, len(matchUps)*games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for mi, matchUp := range matchUps {
		for i := 0; i < games; i++ {
			id := mi*games + i + 1
			white, black := matchUp[0], matchUp[1]
			if i%2 == 1 {
				white, black = black, white
			}
			mi, i := mi, i
			g.Go(func() error {
				winner, gameMetric, moveMetrics, err := runGame(ctx, white, black, rules, maxTurns, id)
				if err != nil {
					return err
				}
				gameRecords[id-1] = metrics.GameRecord{ID: id, White: white.ID, Black: black.ID, GameMetric: gameMetric}
				moveRecords[id-1] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
					return metrics.MoveRecord{Game: id, MoveMetric: mm}
				})
				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %q",
					mi+1, len(matchUps), i+1, games, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s tournament", name)

	writer, err := metrics.NewWriter(baseDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(lo.Flatten(moveRecords)); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored tournament records")

	return &Results{Dir: writer.Dir(), Games: gameRecords, Points: points(gameRecords)}, nil
}

func runGame(ctx context.Context, white, black metrics.AgentConfig, rules game.Rules, maxTurns, id int) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	whiteAgent, err := NewAgent(white, rules, id)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	blackAgent, err := NewAgent(black, rules, id)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	e := engine.NewLocal(gamemaster.NewGame(rules, maxTurns), whiteAgent, blackAgent)
	winner, gameMetric, moveMetrics := e.Run(ctx)
	if gameMetric.Reason == engine.Cancelled {
		return "", gameMetric, nil, ctx.Err()
	}
	return winner, gameMetric, moveMetrics, nil
}

func points(records []metrics.GameRecord) map[int]float64 {
	scores := map[int]float64{}
	for _, r := range records {
		switch r.Winner {
		case game.White.String():
			scores[r.White]++
		case game.Black.String():
			scores[r.Black]++
		default:
			scores[r.White] += 0.5
			scores[r.Black] += 0.5
		}
	}
	return scores
}
