package game

import (
	"errors"
	"fmt"
)

var ErrIllegalMove = errors.New("illegal move")

// Rules fixes the variant choices left open by forced-capture draughts.
type Rules struct {
	// FlyingKings lets kings slide and capture along a whole empty diagonal.
	FlyingKings bool
	// MenCaptureBackward lets men capture in all four directions.
	MenCaptureBackward bool
	// MaximumCapture keeps only the chains taking the most pieces.
	MaximumCapture bool
}

// NewStandardRules returns international rules without the majority-capture
// obligation: every maximal chain is legal.
func NewStandardRules() Rules {
	return Rules{
		FlyingKings:        true,
		MenCaptureBackward: true,
	}
}

// Apply plays m on p after checking that it fits the board: the mover owns the
// origin, the destination is free and every captured square holds an enemy
// piece. It does not check that m is among the legal moves.
func (r Rules) Apply(p Position, m Move) (Position, error) {
	if m == nil {
		return Position{}, fmt.Errorf("%w: no move", ErrIllegalMove)
	}
	c := m.Color()
	from, to := m.Origin(), m.Destination()
	if !from.Valid() || !to.Valid() {
		return Position{}, fmt.Errorf("%w: %v leaves the board", ErrIllegalMove, m)
	}
	owner, king, ok := p.PieceAt(from)
	if !ok || owner != c {
		return Position{}, fmt.Errorf("%w: %v has no %s piece on %d", ErrIllegalMove, m, c, from)
	}
	if to != from && p.board.Occupied()&to.bit() != 0 {
		return Position{}, fmt.Errorf("%w: %v lands on occupied square %d", ErrIllegalMove, m, to)
	}
	var captured uint64
	for _, sq := range m.Captured() {
		if !sq.Valid() || p.board.Pieces(c.Opponent())&sq.bit() == 0 {
			return Position{}, fmt.Errorf("%w: %v captures empty or own square %d", ErrIllegalMove, m, sq)
		}
		captured |= sq.bit()
	}
	return r.play(p, m, king, captured), nil
}

// play builds the child without validation.
func (r Rules) play(p Position, m Move, king bool, captured uint64) Position {
	c := m.Color()
	to := m.Destination()
	board := p.board.clear(m.Origin().bit() | captured)
	if !king && promotionRows[c]&to.bit() != 0 {
		king = true
	}
	return Position{board: board.set(c, to, king), lastMove: m}
}
