package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"draughts/utils"

	"github.com/cespare/xxhash"
)

var (
	ErrOverlappingPieces = errors.New("piece masks overlap")
	ErrSquareOutOfRange  = errors.New("piece outside squares 1..50")
)

const (
	initialWhiteMen uint64 = (1<<20 - 1) << 1
	initialBlackMen uint64 = (1<<20 - 1) << 31
)

// Bitboard is the comparable part of a position: one mask per piece kind,
// square s at bit s.
type Bitboard struct {
	WhiteMen   uint64
	BlackMen   uint64
	WhiteKings uint64
	BlackKings uint64
}

func (b Bitboard) Men(c Color) uint64 {
	if c == White {
		return b.WhiteMen
	}
	return b.BlackMen
}

func (b Bitboard) Kings(c Color) uint64 {
	if c == White {
		return b.WhiteKings
	}
	return b.BlackKings
}

func (b Bitboard) Pieces(c Color) uint64 {
	return b.Men(c) | b.Kings(c)
}

func (b Bitboard) Occupied() uint64 {
	return b.WhiteMen | b.BlackMen | b.WhiteKings | b.BlackKings
}

func (b Bitboard) Empty() uint64 {
	return boardMask &^ b.Occupied()
}

// Hash is stable for equal boards.
func (b Bitboard) Hash() StateHash {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], b.WhiteMen)
	binary.LittleEndian.PutUint64(buf[8:], b.BlackMen)
	binary.LittleEndian.PutUint64(buf[16:], b.WhiteKings)
	binary.LittleEndian.PutUint64(buf[24:], b.BlackKings)
	return StateHash(xxhash.Sum64(buf[:]))
}

func (b Bitboard) validate() error {
	masks := [4]uint64{b.WhiteMen, b.BlackMen, b.WhiteKings, b.BlackKings}
	for i, m := range masks {
		if m&^boardMask != 0 {
			return fmt.Errorf("%w: bits %v", ErrSquareOutOfRange, utils.Bits(m&^boardMask))
		}
		for _, other := range masks[i+1:] {
			if m&other != 0 {
				return fmt.Errorf("%w: squares %v", ErrOverlappingPieces, utils.Bits(m&other))
			}
		}
	}
	return nil
}

// set returns b with the piece of color c on sq, as a king if king is true.
func (b Bitboard) set(c Color, sq Square, king bool) Bitboard {
	switch {
	case c == White && king:
		b.WhiteKings |= sq.bit()
	case c == White:
		b.WhiteMen |= sq.bit()
	case king:
		b.BlackKings |= sq.bit()
	default:
		b.BlackMen |= sq.bit()
	}
	return b
}

// clear removes whatever stands on the squares of mask.
func (b Bitboard) clear(mask uint64) Bitboard {
	b.WhiteMen &^= mask
	b.BlackMen &^= mask
	b.WhiteKings &^= mask
	b.BlackKings &^= mask
	return b
}

// Position is an immutable board together with the move that produced it.
// Two positions with the same Bitboard are interchangeable; the move is only
// kept for display.
type Position struct {
	board    Bitboard
	lastMove Move
}

// NewPosition rejects overlapping masks and bits outside squares 1..50.
func NewPosition(whiteMen, blackMen, whiteKings, blackKings uint64) (Position, error) {
	b := Bitboard{WhiteMen: whiteMen, BlackMen: blackMen, WhiteKings: whiteKings, BlackKings: blackKings}
	if err := b.validate(); err != nil {
		return Position{}, fmt.Errorf("cannot create position: %w", err)
	}
	return Position{board: b}, nil
}

// PositionOf builds a position from square lists, which reads better in tests
// and puzzles than raw masks.
func PositionOf(whiteMen, blackMen, whiteKings, blackKings []Square) (Position, error) {
	return NewPosition(maskOf(whiteMen), maskOf(blackMen), maskOf(whiteKings), maskOf(blackKings))
}

func maskOf(squares []Square) uint64 {
	var mask uint64
	for _, sq := range squares {
		if sq < 0 || sq > 63 {
			// Out of range for a uint64; force a range error.
			mask |= 1
			continue
		}
		mask |= 1 << uint(sq)
	}
	return mask
}

// InitialPosition has 20 white men on squares 1-20 and 20 black men on 31-50.
func InitialPosition() Position {
	return Position{board: Bitboard{WhiteMen: initialWhiteMen, BlackMen: initialBlackMen}}
}

func (p Position) Board() Bitboard { return p.board }

// LastMove is nil for constructed positions.
func (p Position) LastMove() Move { return p.lastMove }

func (p Position) Equal(other Position) bool {
	return p.board == other.board
}

func (p Position) Hash() StateHash {
	return p.board.Hash()
}

func (p Position) Men(c Color) uint64   { return p.board.Men(c) }
func (p Position) Kings(c Color) uint64 { return p.board.Kings(c) }
func (p Position) Pieces(c Color) uint64 {
	return p.board.Pieces(c)
}

func (p Position) Count(c Color) int {
	return bits.OnesCount64(p.board.Pieces(c))
}

// PieceAt reports the color and rank of the piece on sq.
func (p Position) PieceAt(sq Square) (c Color, king bool, ok bool) {
	if !sq.Valid() {
		return White, false, false
	}
	bit := sq.bit()
	switch {
	case p.board.WhiteMen&bit != 0:
		return White, false, true
	case p.board.WhiteKings&bit != 0:
		return White, true, true
	case p.board.BlackMen&bit != 0:
		return Black, false, true
	case p.board.BlackKings&bit != 0:
		return Black, true, true
	}
	return White, false, false
}

// LegalMoves uses the standard rules; see Rules.LegalMoves.
func (p Position) LegalMoves(c Color) []Position {
	return NewStandardRules().LegalMoves(p, c)
}

// Play applies m under the standard rules.
func (p Position) Play(m Move) (Position, error) {
	return NewStandardRules().Apply(p, m)
}

// String draws the board with row 10 on top: w/b for men, W/B for kings.
func (p Position) String() string {
	var sb strings.Builder
	for row := NumRows - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%2d ", row+1)
		for col := 0; col < NumRows; col++ {
			sq := squareAt(row, col)
			if sq == 0 {
				sb.WriteString("  ")
				continue
			}
			sb.WriteByte(pieceRune(p, sq))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func pieceRune(p Position, sq Square) byte {
	c, king, ok := p.PieceAt(sq)
	switch {
	case !ok:
		return '.'
	case c == White && king:
		return 'W'
	case c == White:
		return 'w'
	case king:
		return 'B'
	default:
		return 'b'
	}
}
