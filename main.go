package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"draughts/config"
	"draughts/engine"
	"draughts/experiments"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/gamemaster"
	"draughts/player"
	"draughts/searcher"
	"draughts/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: draughts [flags] <command>

commands:
  selfplay     play --white against --black and print the result
  play [side]  play against the engine on this terminal (side defaults to white)
  bestmove     search the initial position and print the best move
  tournament   play --games games between --white and --black and write the records`

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	setupLogging(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := "selfplay"
	if len(cfg.Args) > 0 {
		command = cfg.Args[0]
	}

	var err error
	switch command {
	case "selfplay":
		err = selfPlay(ctx, cfg)
	case "play":
		err = play(ctx, cfg)
	case "bestmove":
		err = bestMove(ctx, cfg)
	case "tournament":
		err = tournament(ctx, cfg)
	default:
		err = fmt.Errorf("unknown command %q\n%s", command, usage)
	}
	if err != nil {
		log.Error().Err(err).Msg("draughts failed")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Debug().Msg("Debug logging is on")
}

func newAgent(cfg *config.Config, kind string, id int) (agent.Agent, error) {
	if kind == "human" {
		return player.NewHuman(cfg.Rules(), os.Stdin, os.Stdout), nil
	}
	return experiments.NewAgent(cfg.AgentConfig(id, kind), cfg.Rules(), id)
}

func runGame(ctx context.Context, cfg *config.Config, white, black agent.Agent) {
	e := engine.NewLocal(gamemaster.NewGame(cfg.Rules(), cfg.MaxTurns), white, black)
	_, gameMetric, _ := e.Run(ctx)

	fmt.Printf("%s\n", e.Game.Position())
	fmt.Printf("%s after %d plies in %s\n", e.Game.Outcome(), gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))
}

func selfPlay(ctx context.Context, cfg *config.Config) error {
	white, err := newAgent(cfg, cfg.White, 1)
	if err != nil {
		return err
	}
	black, err := newAgent(cfg, cfg.Black, 2)
	if err != nil {
		return err
	}
	runGame(ctx, cfg, white, black)
	return nil
}

func play(ctx context.Context, cfg *config.Config) error {
	side := game.White
	if len(cfg.Args) > 1 {
		var ok bool
		if side, ok = game.ParseColor(cfg.Args[1]); !ok {
			return fmt.Errorf("unknown side %q", cfg.Args[1])
		}
	}
	human := player.NewHuman(cfg.Rules(), os.Stdin, os.Stdout)
	computer, err := newAgent(cfg, "mtdf", 1)
	if err != nil {
		return err
	}
	if side == game.White {
		runGame(ctx, cfg, human, computer)
	} else {
		runGame(ctx, cfg, computer, human)
	}
	return nil
}

func bestMove(ctx context.Context, cfg *config.Config) error {
	s := searcher.NewMTDF(
		searcher.WithScorer(cfg.Scorer()),
		searcher.WithRules(cfg.Rules()),
		searcher.WithTableBits(cfg.SearchTableBits()),
		searcher.WithMetrics(),
	)
	result := s.Search(ctx, game.InitialPosition(), game.White, cfg.Depth)
	if result.Move == nil {
		return fmt.Errorf("no legal move")
	}
	m := result.Metrics
	fmt.Printf("best move %s score %d depth %d\n", result.Move, result.Score, result.Depth)
	fmt.Printf("nodes %d passes %d table %d/%d in %s\n", m.Nodes, m.Passes, m.TableHits, m.TableLookups, m.Duration)
	return nil
}

func tournament(ctx context.Context, cfg *config.Config) error {
	a := cfg.AgentConfig(1, cfg.White)
	b := cfg.AgentConfig(2, cfg.Black)
	results, err := experiments.RunTournament(ctx, "tournament", []metrics.AgentConfig{a, b},
		[][]metrics.AgentConfig{{a, b}}, cfg.Games, cfg.Parallel, cfg.OutputDir, cfg.Rules(), cfg.MaxTurns)
	if err != nil {
		return err
	}
	fmt.Printf("%s (agent 1): %.1f\n", a.Searcher, results.Points[a.ID])
	fmt.Printf("%s (agent 2): %.1f\n", b.Searcher, results.Points[b.ID])
	fmt.Printf("records in %s\n", results.Dir)
	return nil
}
