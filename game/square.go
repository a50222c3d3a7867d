package game

import "draughts/utils"

// Square is a playable square numbered 1..50, five per row.
type Square int

// direction indexes the four diagonals. The first two point toward row 10.
type direction int

const (
	upLeft direction = iota
	upRight
	downLeft
	downRight
	numDirections
)

var directionSteps = [numDirections][2]int{
	upLeft:    {1, -1},
	upRight:   {1, 1},
	downLeft:  {-1, -1},
	downRight: {-1, 1},
}

// neighbors[s][d] is the square diagonally adjacent to s in direction d, or 0.
var neighbors = buildNeighbors()

// promotionRows holds each color's target row.
var promotionRows = [2]uint64{
	White: utils.RowMask(NumRows),
	Black: utils.RowMask(1),
}

const boardMask uint64 = (1<<NumSquares - 1) << 1

func (s Square) Valid() bool {
	return s >= 1 && s <= NumSquares
}

// Row returns the row (1..10) holding s.
func (s Square) Row() int {
	return (int(s)-1)/utils.SquaresPerRow + 1
}

func (s Square) bit() uint64 {
	return 1 << uint(s)
}

// coords maps a square onto the 10x10 grid; only cells with odd row+column
// sums are playable.
func (s Square) coords() (row, col int) {
	row = (int(s) - 1) / utils.SquaresPerRow
	k := (int(s) - 1) % utils.SquaresPerRow
	col = 2 * k
	if row%2 == 0 {
		col++
	}
	return row, col
}

func squareAt(row, col int) Square {
	if row < 0 || row >= NumRows || col < 0 || col >= NumRows || (row+col)%2 != 1 {
		return 0
	}
	return Square(row*utils.SquaresPerRow + col/2 + 1)
}

func buildNeighbors() [NumSquares + 1][numDirections]Square {
	var table [NumSquares + 1][numDirections]Square
	for s := Square(1); s <= NumSquares; s++ {
		row, col := s.coords()
		for d, step := range directionSteps {
			table[s][d] = squareAt(row+step[0], col+step[1])
		}
	}
	return table
}

func forward(c Color, d direction) bool {
	if c == White {
		return d == upLeft || d == upRight
	}
	return d == downLeft || d == downRight
}
