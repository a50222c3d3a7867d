package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidChain = errors.New("invalid jump chain")

// Move is one of SimpleMove, JumpMove or MultiJumpMove.
type Move interface {
	Color() Color
	Origin() Square
	Destination() Square
	// Captured lists the squares of the pieces taken, in capture order.
	Captured() []Square
	Takes(sq Square) bool
	String() string
	isMove()
}

// SimpleMove slides a piece to an empty square without capturing.
type SimpleMove struct {
	color    Color
	from, to Square
}

func NewSimpleMove(c Color, from, to Square) SimpleMove {
	return SimpleMove{color: c, from: from, to: to}
}

func (m SimpleMove) Color() Color         { return m.color }
func (m SimpleMove) Origin() Square       { return m.from }
func (m SimpleMove) Destination() Square  { return m.to }
func (m SimpleMove) Captured() []Square   { return nil }
func (m SimpleMove) Takes(sq Square) bool { return false }
func (m SimpleMove) isMove()              {}

func (m SimpleMove) String() string {
	return fmt.Sprintf("%d-%d", m.from, m.to)
}

// JumpMove captures the piece on over, landing on to.
type JumpMove struct {
	color          Color
	from, over, to Square
}

func NewJumpMove(c Color, from, over, to Square) JumpMove {
	return JumpMove{color: c, from: from, over: over, to: to}
}

func (m JumpMove) Color() Color         { return m.color }
func (m JumpMove) Origin() Square       { return m.from }
func (m JumpMove) Destination() Square  { return m.to }
func (m JumpMove) Captured() []Square   { return []Square{m.over} }
func (m JumpMove) Takes(sq Square) bool { return m.over == sq }
func (m JumpMove) isMove()              {}

// PieceTaken is the square jumped over.
func (m JumpMove) PieceTaken() Square {
	return m.over
}

func (m JumpMove) String() string {
	return fmt.Sprintf("%dx%d", m.from, m.to)
}

// MultiJumpMove is a capture chain by a single piece. Generated captures are
// always chains, including chains of one jump.
type MultiJumpMove struct {
	jumps []JumpMove
}

// NewMultiJumpMove checks that jumps are contiguous, share a color and never
// take the same square twice.
func NewMultiJumpMove(jumps ...JumpMove) (MultiJumpMove, error) {
	if len(jumps) == 0 {
		return MultiJumpMove{}, fmt.Errorf("%w: no jumps", ErrInvalidChain)
	}
	var taken uint64
	for i, j := range jumps {
		if !j.from.Valid() || !j.over.Valid() || !j.to.Valid() {
			return MultiJumpMove{}, fmt.Errorf("%w: jump %d leaves the board", ErrInvalidChain, i+1)
		}
		if j.color != jumps[0].color {
			return MultiJumpMove{}, fmt.Errorf("%w: jump %d changes color", ErrInvalidChain, i+1)
		}
		if i > 0 && j.from != jumps[i-1].to {
			return MultiJumpMove{}, fmt.Errorf("%w: jump %d starts on %d, previous landed on %d",
				ErrInvalidChain, i+1, j.from, jumps[i-1].to)
		}
		if taken&j.over.bit() != 0 {
			return MultiJumpMove{}, fmt.Errorf("%w: square %d taken twice", ErrInvalidChain, j.over)
		}
		taken |= j.over.bit()
	}
	return MultiJumpMove{jumps: append([]JumpMove(nil), jumps...)}, nil
}

func (m MultiJumpMove) Color() Color        { return m.jumps[0].color }
func (m MultiJumpMove) Origin() Square      { return m.jumps[0].from }
func (m MultiJumpMove) Destination() Square { return m.jumps[len(m.jumps)-1].to }
func (m MultiJumpMove) isMove()             {}

// Jumps returns a copy of the chain.
func (m MultiJumpMove) Jumps() []JumpMove {
	return append([]JumpMove(nil), m.jumps...)
}

func (m MultiJumpMove) Len() int {
	return len(m.jumps)
}

func (m MultiJumpMove) Captured() []Square {
	captured := make([]Square, len(m.jumps))
	for i, j := range m.jumps {
		captured[i] = j.over
	}
	return captured
}

func (m MultiJumpMove) Takes(sq Square) bool {
	for _, j := range m.jumps {
		if j.over == sq {
			return true
		}
	}
	return false
}

// String lists every landing square: 28x19x10.
func (m MultiJumpMove) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(m.Origin())))
	for _, j := range m.jumps {
		sb.WriteByte('x')
		sb.WriteString(strconv.Itoa(int(j.to)))
	}
	return sb.String()
}

// ShortString uses origin and destination only: 28x10.
func ShortString(m Move) string {
	if len(m.Captured()) == 0 {
		return m.String()
	}
	return fmt.Sprintf("%dx%d", m.Origin(), m.Destination())
}

// SameMove reports whether a and b describe the same move, including the
// path of a capture chain.
func SameMove(a, b Move) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Color() != b.Color() || a.Origin() != b.Origin() || a.Destination() != b.Destination() {
		return false
	}
	return a.String() == b.String() && squaresEqual(a.Captured(), b.Captured())
}

func squaresEqual(a, b []Square) bool {
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
