package game

import (
	"draughts/utils"
)

// LegalMoves returns the children of p for side c, each carrying the move
// that produced it. Captures are forced: if any piece of c can capture, only
// maximal capture chains are returned. Origins are scanned in increasing
// square order, so the result is deterministic. An empty result means c has
// no move and has lost.
func (r Rules) LegalMoves(p Position, c Color) []Position {
	if children := r.captures(p, c); len(children) > 0 {
		return children
	}
	return r.slides(p, c)
}

// HasLegalMove reports whether LegalMoves(p, c) would be non-empty without
// building the children.
func (r Rules) HasLegalMove(p Position, c Color) bool {
	b := p.board
	empty := b.Empty()
	kings := b.Kings(c)
	for _, s := range utils.Bits(b.Pieces(c)) {
		sq := Square(s)
		king := kings&sq.bit() != 0
		for d := direction(0); d < numDirections; d++ {
			next := neighbors[sq][d]
			if next != 0 && empty&next.bit() != 0 && (king || forward(c, d)) {
				return true
			}
		}
		w := chainWalker{rules: r, color: c, king: king, enemies: b.Pieces(c.Opponent()), empty: empty | sq.bit()}
		for d := direction(0); d < numDirections; d++ {
			if _, landings := w.targets(sq, d, 0); len(landings) > 0 {
				return true
			}
		}
	}
	return false
}

func (r Rules) slides(p Position, c Color) []Position {
	b := p.board
	empty := b.Empty()
	kings := b.Kings(c)
	var children []Position
	for _, s := range utils.Bits(b.Pieces(c)) {
		sq := Square(s)
		king := kings&sq.bit() != 0
		for d := direction(0); d < numDirections; d++ {
			if !king && !forward(c, d) {
				continue
			}
			for to := neighbors[sq][d]; to != 0 && empty&to.bit() != 0; to = neighbors[to][d] {
				children = append(children, r.play(p, NewSimpleMove(c, sq, to), king, 0))
				if !king || !r.FlyingKings {
					break
				}
			}
		}
	}
	return children
}

func (r Rules) captures(p Position, c Color) []Position {
	b := p.board
	kings := b.Kings(c)
	var children []Position
	longest := 0
	for _, s := range utils.Bits(b.Pieces(c)) {
		sq := Square(s)
		w := chainWalker{
			rules:   r,
			color:   c,
			king:    kings&sq.bit() != 0,
			enemies: b.Pieces(c.Opponent()),
			// The moving piece leaves its origin, which may be crossed or
			// landed on again later in the chain.
			empty: b.Empty() | sq.bit(),
		}
		w.walk(sq, 0, nil)
		for _, chain := range w.chains {
			if r.MaximumCapture && len(chain) < longest {
				continue
			}
			if r.MaximumCapture && len(chain) > longest {
				longest = len(chain)
				children = children[:0]
			}
			m := MultiJumpMove{jumps: chain}
			children = append(children, r.play(p, m, w.king, maskOf(m.Captured())))
		}
	}
	return children
}

// chainWalker enumerates the maximal capture chains of one piece. Captured
// pieces stay on the board until the chain ends: they block, and cannot be
// taken twice.
type chainWalker struct {
	rules   Rules
	color   Color
	king    bool
	enemies uint64
	empty   uint64
	chains  [][]JumpMove
}

func (w *chainWalker) walk(from Square, taken uint64, path []JumpMove) {
	extended := false
	for d := direction(0); d < numDirections; d++ {
		over, landings := w.targets(from, d, taken)
		for _, to := range landings {
			extended = true
			next := append(path[:len(path):len(path)], NewJumpMove(w.color, from, over, to))
			w.walk(to, taken|over.bit(), next)
		}
	}
	if !extended && len(path) > 0 {
		w.chains = append(w.chains, path)
	}
}

// targets returns the enemy piece capturable from `from` in direction d and
// the squares the capturing piece may land on.
func (w *chainWalker) targets(from Square, d direction, taken uint64) (Square, []Square) {
	if !w.king && !w.rules.MenCaptureBackward && !forward(w.color, d) {
		return 0, nil
	}
	flying := w.king && w.rules.FlyingKings

	over := neighbors[from][d]
	if flying {
		for over != 0 && w.empty&over.bit() != 0 {
			over = neighbors[over][d]
		}
	}
	if over == 0 || w.enemies&over.bit() == 0 || taken&over.bit() != 0 {
		return 0, nil
	}

	var landings []Square
	for to := neighbors[over][d]; to != 0 && w.empty&to.bit() != 0; to = neighbors[to][d] {
		landings = append(landings, to)
		if !flying {
			break
		}
	}
	return over, landings
}
