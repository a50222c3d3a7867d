package game

// StateHash identifies a board for repetition tables and transposition tables.
type StateHash uint64

const (
	NumSquares = 50
	NumRows    = 10
)
