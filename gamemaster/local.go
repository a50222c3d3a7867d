package gamemaster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"draughts/game"
	"draughts/meta"

	"github.com/samber/lo"
)

var (
	ErrIllegalMove   = game.ErrIllegalMove
	ErrGameOver      = errors.New("game is over - no moves allowed")
	ErrAmbiguousMove = errors.New("ambiguous move")
	ErrBadNotation   = errors.New("bad move notation")
)

type Reason string

const (
	NoMoves     Reason = "no-moves"
	Repetition  Reason = "repetition"
	MaxTurns    Reason = "max-turns"
	Resignation Reason = "resignation"
)

type Outcome struct {
	Over   bool
	Draw   bool
	Winner game.Color // only meaningful when Over and not Draw
	Reason Reason
}

func (o Outcome) String() string {
	switch {
	case !o.Over:
		return "in progress"
	case o.Draw:
		return fmt.Sprintf("draw (%s)", o.Reason)
	default:
		return fmt.Sprintf("%s wins (%s)", o.Winner, o.Reason)
	}
}

// WinnerName is "" for a draw or an unfinished game.
func (o Outcome) WinnerName() string {
	if !o.Over || o.Draw {
		return ""
	}
	return o.Winner.String()
}

type repetitionKey struct {
	board  game.Bitboard
	toMove game.Color
}

// Game is one draughts game: the current position, whose turn it is, and the
// bookkeeping needed to settle the result.
type Game struct {
	rules    game.Rules
	position game.Position
	toMove   game.Color
	history  []game.Position
	seen     map[repetitionKey]int
	maxTurns int
	outcome  Outcome
}

// NewGame starts from the initial position with White to move. maxTurns <= 0
// uses meta.MAX_TURNS.
func NewGame(rules game.Rules, maxTurns int) *Game {
	return NewGameFrom(game.InitialPosition(), game.White, rules, maxTurns)
}

func NewGameFrom(pos game.Position, toMove game.Color, rules game.Rules, maxTurns int) *Game {
	if maxTurns <= 0 {
		maxTurns = meta.MAX_TURNS
	}
	g := &Game{
		rules:    rules,
		position: pos,
		toMove:   toMove,
		history:  []game.Position{pos},
		seen:     map[repetitionKey]int{{pos.Board(), toMove}: 1},
		maxTurns: maxTurns,
	}
	if !rules.HasLegalMove(pos, toMove) {
		g.outcome = Outcome{Over: true, Winner: toMove.Opponent(), Reason: NoMoves}
	}
	return g
}

func (g *Game) Position() game.Position { return g.position }
func (g *Game) ToMove() game.Color      { return g.toMove }
func (g *Game) Rules() game.Rules       { return g.rules }
func (g *Game) Outcome() Outcome        { return g.outcome }
func (g *Game) Over() bool              { return g.outcome.Over }

// Turn counts the plies played so far.
func (g *Game) Turn() int {
	return len(g.history) - 1
}

// History returns every position of the game, starting with the first.
func (g *Game) History() []game.Position {
	return append([]game.Position(nil), g.history...)
}

// Repetitions counts how often pos has occurred with color to move.
func (g *Game) Repetitions(pos game.Position, color game.Color) int {
	return g.seen[repetitionKey{pos.Board(), color}]
}

func (g *Game) LegalMoves() []game.Move {
	if g.outcome.Over {
		return nil
	}
	return lo.Map(g.rules.LegalMoves(g.position, g.toMove), func(child game.Position, _ int) game.Move {
		return child.LastMove()
	})
}

// Play applies m if it is one of the legal moves of the side to move, then
// settles the outcome.
func (g *Game) Play(m game.Move) error {
	if g.outcome.Over {
		return ErrGameOver
	}
	if m == nil {
		return fmt.Errorf("%w: no move", ErrIllegalMove)
	}
	if m.Color() != g.toMove {
		return fmt.Errorf("%w: %s to move, got a %s move", ErrIllegalMove, g.toMove, m.Color())
	}

	children := g.rules.LegalMoves(g.position, g.toMove)
	child, found := lo.Find(children, func(child game.Position) bool {
		return game.SameMove(child.LastMove(), m)
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	mover := g.toMove
	g.position = child
	g.toMove = mover.Opponent()
	g.history = append(g.history, child)
	key := repetitionKey{child.Board(), g.toMove}
	g.seen[key]++

	switch {
	case !g.rules.HasLegalMove(child, g.toMove):
		g.outcome = Outcome{Over: true, Winner: mover, Reason: NoMoves}
	case g.seen[key] >= meta.REPETITION_LIMIT:
		g.outcome = Outcome{Over: true, Draw: true, Reason: Repetition}
	case g.Turn() >= g.maxTurns:
		g.outcome = Outcome{Over: true, Draw: true, Reason: MaxTurns}
	}
	return nil
}

// Resign ends the game in favor of the side not to move.
func (g *Game) Resign() {
	if g.outcome.Over {
		return
	}
	g.outcome = Outcome{Over: true, Winner: g.toMove.Opponent(), Reason: Resignation}
}

// ParseMove resolves notation against the legal moves. Both the full path
// (28x19x10) and origin-destination (28x10) forms are accepted; '-' and 'x'
// are interchangeable.
func (g *Game) ParseMove(notation string) (game.Move, error) {
	squares, err := parseSquares(notation)
	if err != nil {
		return nil, err
	}

	candidates := lo.Filter(g.LegalMoves(), func(m game.Move, _ int) bool {
		p := path(m)
		if len(squares) == 2 {
			return p[0] == squares[0] && p[len(p)-1] == squares[1]
		}
		return samePath(p, squares)
	})

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, notation)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%w: %s could be %s", ErrAmbiguousMove, notation,
			strings.Join(lo.Map(candidates, func(m game.Move, _ int) string { return m.String() }), " or "))
	}
}

func parseSquares(notation string) ([]game.Square, error) {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(notation)), func(r rune) bool {
		return r == '-' || r == 'x'
	})
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrBadNotation, notation)
	}
	squares := make([]game.Square, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || !game.Square(n).Valid() {
			return nil, fmt.Errorf("%w: %q is not a square", ErrBadNotation, f)
		}
		squares[i] = game.Square(n)
	}
	return squares, nil
}

// path lists the origin followed by every landing square.
func path(m game.Move) []game.Square {
	chain, ok := m.(game.MultiJumpMove)
	if !ok {
		return []game.Square{m.Origin(), m.Destination()}
	}
	squares := []game.Square{chain.Origin()}
	for _, j := range chain.Jumps() {
		squares = append(squares, j.Destination())
	}
	return squares
}

func samePath(a, b []game.Square) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
