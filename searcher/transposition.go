package searcher

import (
	"math"

	"draughts/game"
	"draughts/meta"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// 48 bytes: four masks, bounds, depth, color and a used flag.
const entrySize = 48

type tableKey struct {
	board game.Bitboard
	color game.Color
	depth int
}

type tableEntry struct {
	board        game.Bitboard
	lower, upper int32
	depth        int16
	color        game.Color
	used         bool
}

func (e *tableEntry) matches(key tableKey) bool {
	return e.used && e.board == key.board && e.color == key.color && int(e.depth) == key.depth
}

// TranspositionTable keeps lower and upper bounds on the minimax value of a
// (position, side to move, remaining depth) triple. It is direct-mapped: a new
// key replaces whatever occupies its slot. Not safe for concurrent use.
type TranspositionTable struct {
	table        []tableEntry
	sizePowerOf2 int
	sizeMask     uint64
	lookups      int
	hits         int
	created      int
}

func NewTranspositionTable(bits int) *TranspositionTable {
	bits = min(max(bits, meta.MIN_TABLE_BITS), meta.MAX_TABLE_BITS)
	n := 1 << bits
	return &TranspositionTable{
		table:        make([]tableEntry, n),
		sizePowerOf2: bits,
		sizeMask:     uint64(n - 1),
	}
}

// TableBitsForMemory picks the largest table that fits in the given fraction
// of system memory.
func TableBitsForMemory(fractionOfMemory float64) int {
	totalMem := memory.TotalMemory()
	desired := fractionOfMemory * float64(totalMem) / entrySize
	bits := meta.MIN_TABLE_BITS
	if desired >= 1 {
		bits = int(math.Log2(desired))
	}
	bits = min(max(bits, meta.MIN_TABLE_BITS), meta.MAX_TABLE_BITS)
	log.Debug().Int("table-bits", bits).
		Float64("desired-num-elems", desired).
		Int("estimated-total-memory-bytes", (1<<bits)*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
	return bits
}

func (t *TranspositionTable) index(key tableKey) uint64 {
	h := uint64(key.board.Hash())
	h ^= hashUint64(uint64(key.color)<<32 | uint64(key.depth))
	return hashUint64(h) & t.sizeMask
}

// lookup returns the stored bounds for key, or (-Infinity, +Infinity).
func (t *TranspositionTable) lookup(key tableKey) (lower, upper int, ok bool) {
	t.lookups++
	e := &t.table[t.index(key)]
	if !e.matches(key) {
		return -Infinity, Infinity, false
	}
	t.hits++
	return int(e.lower), int(e.upper), true
}

// store writes bounds for key. Bounds for the same key are intersected, so a
// later fail-low pass tightens the upper bound without losing the lower one.
func (t *TranspositionTable) store(key tableKey, lower, upper int) {
	e := &t.table[t.index(key)]
	if e.matches(key) {
		lower = max(lower, int(e.lower))
		upper = min(upper, int(e.upper))
	} else {
		t.created++
	}
	*e = tableEntry{
		board: key.board,
		lower: int32(lower),
		upper: int32(upper),
		depth: int16(key.depth),
		color: key.color,
		used:  true,
	}
}

// Reset empties the table and its counters.
func (t *TranspositionTable) Reset() {
	clear(t.table)
	t.lookups = 0
	t.hits = 0
	t.created = 0
}

func (t *TranspositionTable) Stats() (lookups, hits int) {
	return t.lookups, t.hits
}

func (t *TranspositionTable) Size() int {
	return len(t.table)
}

// splitmix64 finalizer
func hashUint64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
