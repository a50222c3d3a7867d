// meta/meta.go
package meta

// DEFAULT_DEPTH is the search depth in plies when none is configured.
const DEFAULT_DEPTH = 6

// MAX_TURNS ends a game as a draw after this many plies.
const MAX_TURNS = 300

// REPETITION_LIMIT ends a game as a draw when a position occurs this many times
// with the same side to move.
const REPETITION_LIMIT = 3

// DEFAULT_TABLE_BITS sizes the transposition table to 2^18 entries.
const DEFAULT_TABLE_BITS = 18

const MIN_TABLE_BITS = 10
const MAX_TABLE_BITS = 28

// PARALLEL_GAMES is the default number of tournament games run at once.
const PARALLEL_GAMES = 8
