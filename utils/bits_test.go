package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowMask(t *testing.T) {
	t.Run("first row holds squares 1 to 5", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3, 4, 5}, Bits(RowMask(1)))
	})

	t.Run("last row holds squares 46 to 50", func(t *testing.T) {
		require.Equal(t, []int{46, 47, 48, 49, 50}, Bits(RowMask(10)))
	})

	t.Run("rows partition the board", func(t *testing.T) {
		var all uint64
		for row := 1; row <= NumRows; row++ {
			require.Zero(t, all&RowMask(row), "Rows should not overlap")
			all |= RowMask(row)
		}
		require.Len(t, Bits(all), 50)
	})

	t.Run("out of range rows are empty", func(t *testing.T) {
		require.Zero(t, RowMask(0))
		require.Zero(t, RowMask(11))
	})
}

func TestBits(t *testing.T) {
	require.Empty(t, Bits(0))
	require.Equal(t, []int{0, 3, 63}, Bits(1|1<<3|1<<63))
}
