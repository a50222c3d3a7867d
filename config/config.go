package config

import (
	"errors"
	"fmt"
	"strings"

	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/meta"
	"draughts/searcher"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Depth               int
	ScorerName          string
	FlyingKings         bool
	MenCaptureBackward  bool
	MaximumCapture      bool
	TableBits           int
	TableMemoryFraction float64
	MaxTurns            int
	White               string
	Black               string
	Seed                uint64
	Games               int
	Parallel            int
	OutputDir           string
	Debug               bool
	Args                []string // positional arguments left after the flags
}

// Load reads flags from args, then DRAUGHTS_* environment variables, then
// defaults. Flags that were not set fall through to the environment.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("draughts", pflag.ContinueOnError)
	fs.Int("depth", meta.DEFAULT_DEPTH, "search depth in plies")
	fs.String("scorer", "placement", "static evaluation: material or placement")
	fs.Bool("flying-kings", true, "kings move and capture along whole diagonals")
	fs.Bool("men-capture-backward", true, "men may capture backward")
	fs.Bool("maximum-capture", false, "only the longest capture chains are legal")
	fs.Int("table-bits", meta.DEFAULT_TABLE_BITS, "transposition table size as a power of two")
	fs.Float64("table-memory-fraction", 0, "size the transposition table from this fraction of system memory instead")
	fs.Int("max-turns", meta.MAX_TURNS, "plies before a game is drawn")
	fs.String("white", "mtdf", "white agent: mtdf, alphabeta, random or human")
	fs.String("black", "mtdf", "black agent: mtdf, alphabeta, random or human")
	fs.Uint64("seed", 1, "seed for random agents")
	fs.Int("games", 10, "games per tournament match up")
	fs.Int("parallel", meta.PARALLEL_GAMES, "tournament games run at once")
	fs.String("output-dir", "experiments", "directory for tournament records")
	fs.Bool("debug", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("DRAUGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	c.Depth = v.GetInt("depth")
	c.ScorerName = v.GetString("scorer")
	c.FlyingKings = v.GetBool("flying-kings")
	c.MenCaptureBackward = v.GetBool("men-capture-backward")
	c.MaximumCapture = v.GetBool("maximum-capture")
	c.TableBits = v.GetInt("table-bits")
	c.TableMemoryFraction = v.GetFloat64("table-memory-fraction")
	c.MaxTurns = v.GetInt("max-turns")
	c.White = v.GetString("white")
	c.Black = v.GetString("black")
	c.Seed = v.GetUint64("seed")
	c.Games = v.GetInt("games")
	c.Parallel = v.GetInt("parallel")
	c.OutputDir = v.GetString("output-dir")
	c.Debug = v.GetBool("debug")
	c.Args = fs.Args()
	return c.validate()
}

func (c *Config) validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalidConfig, c.Depth)
	}
	if _, err := game.NewScorer(c.ScorerName); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.TableMemoryFraction < 0 || c.TableMemoryFraction > 0.9 {
		return fmt.Errorf("%w: table-memory-fraction must be within [0, 0.9], got %g", ErrInvalidConfig, c.TableMemoryFraction)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("%w: max-turns must be positive, got %d", ErrInvalidConfig, c.MaxTurns)
	}
	if c.Games < 1 || c.Parallel < 1 {
		return fmt.Errorf("%w: games and parallel must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) Rules() game.Rules {
	return game.Rules{
		FlyingKings:        c.FlyingKings,
		MenCaptureBackward: c.MenCaptureBackward,
		MaximumCapture:     c.MaximumCapture,
	}
}

// Scorer is validated by Load.
func (c *Config) Scorer() game.Scorer {
	s, _ := game.NewScorer(c.ScorerName)
	return s
}

// SearchTableBits prefers a memory fraction over a fixed size.
func (c *Config) SearchTableBits() int {
	if c.TableMemoryFraction > 0 {
		return searcher.TableBitsForMemory(c.TableMemoryFraction)
	}
	return c.TableBits
}

// AgentConfig describes the agent named by kind with this config's search
// settings.
func (c *Config) AgentConfig(id int, kind string) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:        id,
		Searcher:  kind,
		Depth:     c.Depth,
		Scorer:    c.ScorerName,
		TableBits: c.SearchTableBits(),
		Seed:      c.Seed,
	}
}
