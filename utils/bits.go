package utils

import "math/bits"

const (
	NumRows       = 10
	SquaresPerRow = 5
)

// RowMask returns the mask of the five playable squares on row (1..10).
// Square s lives at bit s, so row r owns bits (r-1)*5+1 .. r*5.
func RowMask(row int) uint64 {
	if row < 1 || row > NumRows {
		return 0
	}
	return uint64(1<<SquaresPerRow-1) << uint((row-1)*SquaresPerRow+1)
}

// Bits returns the indices of the set bits of mask in increasing order.
func Bits(mask uint64) []int {
	indices := make([]int, 0, bits.OnesCount64(mask))
	for mask != 0 {
		indices = append(indices, bits.TrailingZeros64(mask))
		mask &= mask - 1
	}
	return indices
}
